package employee

import (
	"strings"
	"time"

	employeeerrors "go-hrgql/internal/employee/errors"
	"go-hrgql/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	defaultSortColumn = "first_name"
)

// sortColumns accepts both the API field name and the column name.
var sortColumns = func() map[string]string {
	pairs := [][2]string{
		{"firstName", "first_name"},
		{"lastName", "last_name"},
		{"email", "email"},
		{"employeeCode", "employee_code"},
		{"department", "department"},
		{"position", "position"},
		{"hireDate", "hire_date"},
		{"salary", "salary"},
		{"status", "status"},
		{"createdAt", "created_at"},
	}
	m := make(map[string]string, len(pairs)*2)
	for _, p := range pairs {
		m[p[0]] = p[1]
		m[p[1]] = p[1]
	}
	return m
}()

// ListQuery is a parameterized listing query. Where uses gorm "?"
// placeholders and is shared by the page query and the count query.
type ListQuery struct {
	Where   string
	Args    []interface{}
	OrderBy string
	Limit   int
	Offset  int
}

type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func (w *whereBuilder) add(clause string, args ...interface{}) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *whereBuilder) addString(column string, value *string) {
	if v := trimmed(value); v != "" {
		w.add(column+" = ?", v)
	}
}

// BuildListQuery translates listing parameters into a WHERE fragment, an
// ORDER BY and LIMIT/OFFSET. Age filters are resolved against now.
func BuildListQuery(req ListEmployeesRequest, now time.Time) (ListQuery, error) {
	if req.Page < 1 {
		return ListQuery{}, apperror.Validation("Page must be at least 1")
	}
	if req.Limit < 1 || req.Limit > MaxLimit {
		return ListQuery{}, apperror.Validationf("Limit must be between 1 and %d", MaxLimit)
	}

	orderBy, err := buildOrderBy(req.SortBy, req.SortOrder)
	if err != nil {
		return ListQuery{}, err
	}

	w := &whereBuilder{}
	if err := applyFilters(w, req.Filters, now); err != nil {
		return ListQuery{}, err
	}

	return ListQuery{
		Where:   strings.Join(w.clauses, " AND "),
		Args:    w.args,
		OrderBy: orderBy,
		Limit:   req.Limit,
		Offset:  (req.Page - 1) * req.Limit,
	}, nil
}

func buildOrderBy(sortBy, sortOrder string) (string, error) {
	column := defaultSortColumn
	if sortBy = strings.TrimSpace(sortBy); sortBy != "" {
		c, ok := sortColumns[sortBy]
		if !ok {
			return "", apperror.Validationf("Invalid sort field: %s", sortBy)
		}
		column = c
	}

	direction := "ASC"
	if sortOrder = strings.TrimSpace(sortOrder); sortOrder != "" {
		switch strings.ToUpper(sortOrder) {
		case "ASC":
		case "DESC":
			direction = "DESC"
		default:
			return "", apperror.Validation("Sort order must be ASC or DESC")
		}
	}

	// id sebagai tiebreaker supaya urutan halaman stabil
	return column + " " + direction + ", id ASC", nil
}

func applyFilters(w *whereBuilder, f EmployeeFilter, now time.Time) error {
	if q := trimmed(f.Search); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		w.add("(first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR employee_code ILIKE ?)",
			pattern, pattern, pattern, pattern)
	}

	w.addString("department", f.Department)
	w.addString("position", f.Position)
	w.addString("city", f.City)
	w.addString("state", f.State)
	w.addString("country", f.Country)

	if v := trimmed(f.Status); v != "" {
		if err := apperror.ValidateVar("status", v, "oneof=active inactive terminated"); err != nil {
			return err
		}
		w.add("status = ?", v)
	}
	if v := trimmed(f.Gender); v != "" {
		if err := apperror.ValidateVar("gender", v, "oneof=male female other"); err != nil {
			return err
		}
		w.add("gender = ?", v)
	}
	if v := trimmed(f.ManagerID); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return employeeerrors.ErrInvalidEmployeeID
		}
		w.add("manager_id = ?", id)
	}

	if f.HasManager != nil {
		if *f.HasManager {
			w.add("manager_id IS NOT NULL")
		} else {
			w.add("manager_id IS NULL")
		}
	}

	if err := checkIntRange("Age", f.MinAge, f.MaxAge); err != nil {
		return err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if f.MinAge != nil {
		// lahir paling lambat hari ini minus N tahun
		w.add("date_of_birth <= ?", today.AddDate(-*f.MinAge, 0, 0))
	}
	if f.MaxAge != nil {
		w.add("date_of_birth > ?", today.AddDate(-(*f.MaxAge+1), 0, 0))
	}

	if err := checkFloatRange("Salary", f.MinSalary, f.MaxSalary); err != nil {
		return err
	}
	if f.MinSalary != nil {
		w.add("salary >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		w.add("salary <= ?", *f.MaxSalary)
	}

	if err := checkIntRange("Experience", f.MinExperience, f.MaxExperience); err != nil {
		return err
	}
	if f.MinExperience != nil {
		w.add("experience >= ?", *f.MinExperience)
	}
	if f.MaxExperience != nil {
		w.add("experience <= ?", *f.MaxExperience)
	}

	if f.HiredAfter != nil && f.HiredBefore != nil && f.HiredAfter.After(*f.HiredBefore) {
		return apperror.Validation("Hired After must not be later than Hired Before")
	}
	if f.HiredAfter != nil {
		w.add("hire_date >= ?", *f.HiredAfter)
	}
	if f.HiredBefore != nil {
		w.add("hire_date <= ?", *f.HiredBefore)
	}

	if skills := compact(f.Skills); len(skills) > 0 {
		w.add("skills @> ?::text[]", pq.StringArray(skills))
	}

	if f.PerformanceRating != nil {
		w.add("performance_rating >= ?", *f.PerformanceRating)
	}

	return nil
}

func checkIntRange(name string, lo, hi *int) error {
	if lo != nil && *lo < 0 {
		return apperror.Validationf("Min %s must be at least 0", name)
	}
	if hi != nil && *hi < 0 {
		return apperror.Validationf("Max %s must be at least 0", name)
	}
	if lo != nil && hi != nil && *lo > *hi {
		return apperror.Validationf("Min %s must not be greater than Max %s", name, name)
	}
	return nil
}

func checkFloatRange(name string, lo, hi *float64) error {
	if lo != nil && hi != nil && *lo > *hi {
		return apperror.Validationf("Min %s must not be greater than Max %s", name, name)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
