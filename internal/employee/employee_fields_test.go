package employee

import (
	"testing"
	"time"

	employeeerrors "go-hrgql/internal/employee/errors"
	"go-hrgql/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func sp(s string) *string { return &s }

func TestBuildChangeSet(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("empty request", func(t *testing.T) {
		cs, err := buildChangeSet(UpdateEmployeeRequest{}, now)

		assert.NoError(t, err)
		assert.True(t, cs.empty())
	})

	t.Run("maps only present fields", func(t *testing.T) {
		salary := 75000.0
		skills := []string{"Go", "", "Kafka"}

		cs, err := buildChangeSet(UpdateEmployeeRequest{
			FirstName: sp("  Siti "),
			Email:     sp("Siti@Company.COM"),
			Salary:    &salary,
			Skills:    &skills,
		}, now)

		assert.NoError(t, err)
		assert.Equal(t, []string{"firstName", "email", "salary", "skills"}, cs.fields)
		assert.Equal(t, map[string]interface{}{
			"first_name": "Siti",
			"email":      "siti@company.com",
			"salary":     75000.0,
			"skills":     pq.StringArray{"Go", "Kafka"},
		}, cs.columns)
		assert.Nil(t, cs.managerID)
	})

	t.Run("empty string clears nullable field", func(t *testing.T) {
		cs, err := buildChangeSet(UpdateEmployeeRequest{Phone: sp(""), City: sp("  ")}, now)

		assert.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"phone": nil, "city": nil}, cs.columns)
	})

	t.Run("empty string on required field", func(t *testing.T) {
		_, err := buildChangeSet(UpdateEmployeeRequest{Department: sp("")}, now)

		assert.EqualError(t, err, "Department is required")
	})

	t.Run("empty manager id clears manager", func(t *testing.T) {
		cs, err := buildChangeSet(UpdateEmployeeRequest{ManagerID: sp("")}, now)

		assert.NoError(t, err)
		assert.Nil(t, cs.columns["manager_id"])
		assert.Equal(t, uuid.Nil, *cs.managerID)
	})

	t.Run("manager id parsed", func(t *testing.T) {
		id := uuid.New()
		cs, err := buildChangeSet(UpdateEmployeeRequest{ManagerID: sp(id.String())}, now)

		assert.NoError(t, err)
		assert.Equal(t, id, cs.columns["manager_id"])
		assert.Equal(t, id, *cs.managerID)
	})

	t.Run("malformed manager id", func(t *testing.T) {
		_, err := buildChangeSet(UpdateEmployeeRequest{ManagerID: sp("abc")}, now)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("birth date in future", func(t *testing.T) {
		dob := now.AddDate(0, 0, 1)
		_, err := buildChangeSet(UpdateEmployeeRequest{DateOfBirth: &dob}, now)

		assert.ErrorIs(t, err, employeeerrors.ErrDateOfBirthInFuture)
	})

	t.Run("range checks", func(t *testing.T) {
		rating := 5.5
		experience := 51
		tooMany := make([]string, 11)
		for i := range tooMany {
			tooMany[i] = "cert"
		}

		_, err := buildChangeSet(UpdateEmployeeRequest{PerformanceRating: &rating}, now)
		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))

		_, err = buildChangeSet(UpdateEmployeeRequest{Experience: &experience}, now)
		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))

		_, err = buildChangeSet(UpdateEmployeeRequest{Certifications: &tooMany}, now)
		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))

		_, err = buildChangeSet(UpdateEmployeeRequest{EmployeeCode: sp("emp-1")}, now)
		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))

		_, err = buildChangeSet(UpdateEmployeeRequest{Status: sp("retired")}, now)
		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})
}

func TestChangeSet_Scopes(t *testing.T) {
	now := time.Now()

	profile, err := buildChangeSet(UpdateEmployeeRequest{
		Phone:     sp("+62 812-3456-7890"),
		AvatarURL: sp("https://cdn.example.com/a.png"),
	}, now)
	assert.NoError(t, err)
	assert.True(t, profile.profileOnly())

	withSalary, err := buildChangeSet(UpdateEmployeeRequest{
		Phone:  sp("+62 812-3456-7890"),
		Status: sp("inactive"),
	}, now)
	assert.NoError(t, err)
	assert.False(t, withSalary.profileOnly())

	bulk, err := buildChangeSet(UpdateEmployeeRequest{Department: sp("Sales"), Status: sp("inactive")}, now)
	assert.NoError(t, err)
	_, ok := bulk.bulkOnly()
	assert.True(t, ok)

	notBulk, err := buildChangeSet(UpdateEmployeeRequest{Department: sp("Sales"), Email: sp("x@y.com")}, now)
	assert.NoError(t, err)
	field, ok := notBulk.bulkOnly()
	assert.False(t, ok)
	assert.Equal(t, "email", field)
}

func TestEmployee_AgeAt(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, Employee{}.AgeAt(now))

	dob := time.Date(1990, time.March, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 35, *Employee{DateOfBirth: &dob}.AgeAt(now))

	dob = time.Date(1990, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 36, *Employee{DateOfBirth: &dob}.AgeAt(now))
}
