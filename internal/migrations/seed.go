package migrations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrgql/internal/employee"
	"go-hrgql/internal/rbac"
	"go-hrgql/internal/user"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AdminEmail    = "admin@company.com"
	AdminPassword = "admin123"
)

var fakeDepartments = map[string][]string{
	"Engineering":      {"Software Engineer", "Senior Software Engineer", "QA Engineer", "DevOps Engineer"},
	"Human Resources":  {"HR Manager", "Recruiter", "HR Generalist"},
	"Sales":            {"Sales Representative", "Account Executive"},
	"Marketing":        {"Marketing Specialist", "Content Strategist"},
	"Finance":          {"Financial Analyst", "Accountant"},
	"Operations":       {"Operations Manager", "Operations Analyst"},
	"Customer Service": {"Customer Service Representative", "Support Lead"},
}

type sampleEmployee struct {
	code, first, last, department, position, city, state, zip string
	salary                                                    float64
	hired                                                     string
}

var sampleEmployees = []sampleEmployee{
	{"EMP001", "John", "Doe", "Engineering", "Software Engineer", "New York", "NY", "10001", 75000, "2023-01-15"},
	{"EMP002", "Alice", "Smith", "Human Resources", "HR Manager", "Los Angeles", "CA", "90001", 65000, "2022-03-10"},
	{"EMP003", "Bob", "Johnson", "Sales", "Sales Representative", "Chicago", "IL", "60601", 55000, "2023-06-20"},
	{"EMP004", "Sarah", "Williams", "Marketing", "Marketing Specialist", "Houston", "TX", "77001", 60000, "2023-02-28"},
	{"EMP005", "Michael", "Brown", "Finance", "Financial Analyst", "Phoenix", "AZ", "85001", 70000, "2022-11-15"},
	{"EMP006", "Emma", "Davis", "Engineering", "Senior Software Engineer", "Seattle", "WA", "98101", 95000, "2021-09-01"},
	{"EMP007", "Chris", "Wilson", "Operations", "Operations Manager", "Denver", "CO", "80201", 80000, "2022-05-12"},
	{"EMP008", "Lisa", "Taylor", "Customer Service", "Customer Service Representative", "Miami", "FL", "33101", 45000, "2023-08-01"},
}

type Seeder struct {
	employees employee.Repository
	users     user.Repository
	cost      int
	now       func() time.Time
	logger    *zap.Logger
}

func NewSeeder(employees employee.Repository, users user.Repository, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.L()
	}
	return &Seeder{
		employees: employees,
		users:     users,
		cost:      bcrypt.DefaultCost,
		now:       time.Now,
		logger:    logger.Named("migrations.seed"),
	}
}

// SeedAdmin creates the admin account unless it already exists.
func (s *Seeder) SeedAdmin(ctx context.Context) (bool, error) {
	existing, err := s.users.FindByEmail(ctx, AdminEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if existing != nil {
		s.logger.Info("admin already present, skipping", zap.String("email", AdminEmail))
		return false, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), s.cost)
	if err != nil {
		return false, err
	}

	now := s.now().UTC()
	if err := s.users.Create(ctx, &user.User{
		ID:           uuid.New(),
		Email:        AdminEmail,
		PasswordHash: string(hashed),
		Role:         rbac.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return false, err
	}

	s.logger.Info("admin seeded", zap.String("email", AdminEmail))
	return true, nil
}

// SeedSampleEmployees inserts the fixed demo roster, skipping codes that
// already exist.
func (s *Seeder) SeedSampleEmployees(ctx context.Context) (int, error) {
	created := 0
	for _, se := range sampleEmployees {
		hired, err := time.Parse("2006-01-02", se.hired)
		if err != nil {
			return created, err
		}
		salary := se.salary
		city, state, zip := se.city, se.state, se.zip

		e := &employee.Employee{
			EmployeeCode: se.code,
			FirstName:    se.first,
			LastName:     se.last,
			Email:        strings.ToLower(se.first + "." + se.last + "@company.com"),
			Department:   se.department,
			Position:     se.position,
			Salary:       &salary,
			HireDate:     hired,
			City:         &city,
			State:        &state,
			ZipCode:      &zip,
		}

		ok, err := s.insertIfAbsent(ctx, e)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	s.logger.Info("sample employees seeded", zap.Int("created", created))
	return created, nil
}

// SeedFakeEmployees inserts n generated employees with codes continuing
// after the sample roster.
func (s *Seeder) SeedFakeEmployees(ctx context.Context, n int) (int, error) {
	gen := faker.New()
	p := gen.Person()
	addr := gen.Address()

	departments := make([]string, 0, len(fakeDepartments))
	for d := range fakeDepartments {
		departments = append(departments, d)
	}

	now := s.now().UTC()
	created := 0
	for i := 0; i < n; i++ {
		code := fmt.Sprintf("EMP%03d", len(sampleEmployees)+i+1)
		first, last := p.FirstName(), p.LastName()
		department := gen.RandomStringElement(departments)
		position := gen.RandomStringElement(fakeDepartments[department])
		salary := float64(gen.IntBetween(35, 150)) * 1000
		experience := gen.IntBetween(0, 25)
		city, state := addr.City(), addr.State()
		hired := now.AddDate(0, 0, -gen.IntBetween(30, 3650)).Truncate(24 * time.Hour)

		e := &employee.Employee{
			EmployeeCode: code,
			FirstName:    first,
			LastName:     last,
			Email:        strings.ToLower(fmt.Sprintf("%s.%s.%s@company.com", first, last, strings.ToLower(code))),
			Department:   department,
			Position:     position,
			Salary:       &salary,
			HireDate:     hired,
			City:         &city,
			State:        &state,
			Experience:   &experience,
		}

		ok, err := s.insertIfAbsent(ctx, e)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	s.logger.Info("fake employees seeded", zap.Int("requested", n), zap.Int("created", created))
	return created, nil
}

func (s *Seeder) insertIfAbsent(ctx context.Context, e *employee.Employee) (bool, error) {
	conflicts, err := s.employees.FindConflicts(ctx, e.EmployeeCode, e.Email, nil)
	if err != nil {
		return false, err
	}
	if len(conflicts) > 0 {
		s.logger.Debug("employee exists, skipping", zap.String("employee_code", e.EmployeeCode))
		return false, nil
	}

	now := s.now().UTC()
	e.ID = uuid.New()
	e.Status = employee.StatusActive
	e.Skills = []string{}
	e.Certifications = []string{}
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.employees.Create(ctx, e); err != nil {
		return false, fmt.Errorf("insert %s: %w", e.EmployeeCode, err)
	}
	return true, nil
}
