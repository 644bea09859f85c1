package employee

import (
	"strings"
	"time"

	employeeerrors "go-hrgql/internal/employee/errors"
	"go-hrgql/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// fieldMapping binds one UpdateEmployeeRequest field to its column.
//
// profile marks the fields a caller may change on their own record.
// nullable fields are cleared to NULL by an empty string; rule is the
// validator tag applied to a non-empty value.
type fieldMapping struct {
	field    string
	column   string
	profile  bool
	bulk     bool
	nullable bool
	rule     string
	value    func(r *UpdateEmployeeRequest) interface{}
}

var updatableFields = []fieldMapping{
	{field: "employeeCode", column: "employee_code", rule: "employee_code",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.EmployeeCode }},
	{field: "firstName", column: "first_name", profile: true, rule: "min=2,max=50,person_name",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.FirstName }},
	{field: "lastName", column: "last_name", profile: true, rule: "min=2,max=50,person_name",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.LastName }},
	{field: "email", column: "email", rule: "email,max=100",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Email }},
	{field: "phone", column: "phone", profile: true, nullable: true, rule: "phone",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Phone }},
	{field: "dateOfBirth", column: "date_of_birth",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.DateOfBirth }},
	{field: "gender", column: "gender", nullable: true, rule: "oneof=male female other",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Gender }},
	{field: "department", column: "department", bulk: true, rule: "max=50",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Department }},
	{field: "position", column: "position", bulk: true, rule: "max=100",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Position }},
	{field: "salary", column: "salary", rule: "min=0,max=10000000",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Salary }},
	{field: "hireDate", column: "hire_date",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.HireDate }},
	{field: "managerId", column: "manager_id", bulk: true, nullable: true,
		value: func(r *UpdateEmployeeRequest) interface{} { return r.ManagerID }},
	{field: "status", column: "status", bulk: true, rule: "oneof=active inactive terminated",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Status }},
	{field: "address", column: "address", profile: true, nullable: true, rule: "max=255",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Address }},
	{field: "city", column: "city", profile: true, nullable: true, rule: "max=50",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.City }},
	{field: "state", column: "state", profile: true, nullable: true, rule: "max=50",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.State }},
	{field: "zipCode", column: "zip_code", profile: true, nullable: true, rule: "max=10",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.ZipCode }},
	{field: "country", column: "country", profile: true, nullable: true, rule: "max=50",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Country }},
	{field: "emergencyContact", column: "emergency_contact", profile: true, nullable: true, rule: "max=100",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.EmergencyContact }},
	{field: "emergencyPhone", column: "emergency_phone", profile: true, nullable: true, rule: "phone",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.EmergencyPhone }},
	{field: "skills", column: "skills", profile: true, rule: "max=20,dive,required,max=50",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Skills }},
	{field: "experience", column: "experience", rule: "min=0,max=50",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Experience }},
	{field: "education", column: "education", profile: true, nullable: true, rule: "max=255",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Education }},
	{field: "certifications", column: "certifications", profile: true, rule: "max=10,dive,required,max=100",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.Certifications }},
	{field: "performanceRating", column: "performance_rating", rule: "min=0,max=5",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.PerformanceRating }},
	{field: "avatarUrl", column: "avatar_url", profile: true, nullable: true, rule: "url,max=500",
		value: func(r *UpdateEmployeeRequest) interface{} { return r.AvatarURL }},
}

// changeSet is the validated result of applying the mapping table.
type changeSet struct {
	columns map[string]interface{}
	fields  []string
	// managerID is set when managerId is present; uuid.Nil means cleared.
	managerID *uuid.UUID
}

func (c changeSet) empty() bool {
	return len(c.fields) == 0
}

func (c changeSet) profileOnly() bool {
	for _, f := range c.fields {
		if m, ok := fieldByName(f); !ok || !m.profile {
			return false
		}
	}
	return true
}

func (c changeSet) bulkOnly() (string, bool) {
	for _, f := range c.fields {
		if m, ok := fieldByName(f); !ok || !m.bulk {
			return f, false
		}
	}
	return "", true
}

func (c changeSet) has(field string) bool {
	for _, f := range c.fields {
		if f == field {
			return true
		}
	}
	return false
}

func fieldByName(name string) (fieldMapping, bool) {
	for _, m := range updatableFields {
		if m.field == name {
			return m, true
		}
	}
	return fieldMapping{}, false
}

// buildChangeSet validates every present field and returns the column
// assignments. updated_at is not included.
func buildChangeSet(req UpdateEmployeeRequest, now time.Time) (changeSet, error) {
	cs := changeSet{columns: map[string]interface{}{}}

	for _, m := range updatableFields {
		var (
			value interface{}
			err   error
		)

		switch v := m.value(&req).(type) {
		case *string:
			if v == nil {
				continue
			}
			value, err = m.stringValue(*v, &cs)
		case *float64:
			if v == nil {
				continue
			}
			err = apperror.ValidateVar(m.field, *v, m.rule)
			value = *v
		case *int:
			if v == nil {
				continue
			}
			err = apperror.ValidateVar(m.field, *v, m.rule)
			value = *v
		case *time.Time:
			if v == nil {
				continue
			}
			err = m.dateValue(*v, now)
			value = *v
		case *[]string:
			if v == nil {
				continue
			}
			values := compact(*v)
			err = apperror.ValidateVar(m.field, values, m.rule)
			value = pq.StringArray(values)
		default:
			continue
		}
		if err != nil {
			return changeSet{}, err
		}

		cs.columns[m.column] = value
		cs.fields = append(cs.fields, m.field)
	}

	return cs, nil
}

func (m fieldMapping) stringValue(raw string, cs *changeSet) (interface{}, error) {
	s := strings.TrimSpace(raw)
	if m.column == "email" {
		s = strings.ToLower(s)
	}

	if s == "" {
		if !m.nullable {
			return nil, apperror.RequiredField(apperror.FieldLabel(m.field))
		}
		if m.column == "manager_id" {
			id := uuid.Nil
			cs.managerID = &id
		}
		return nil, nil
	}

	if m.column == "manager_id" {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, employeeerrors.ErrInvalidEmployeeID
		}
		cs.managerID = &id
		return id, nil
	}

	if err := apperror.ValidateVar(m.field, s, m.rule); err != nil {
		return nil, err
	}
	return s, nil
}

func (m fieldMapping) dateValue(t time.Time, now time.Time) error {
	if t.IsZero() {
		return apperror.RequiredField(apperror.FieldLabel(m.field))
	}
	if m.column == "date_of_birth" && t.After(now) {
		return employeeerrors.ErrDateOfBirthInFuture
	}
	return nil
}
