package employee

import (
	"time"

	"go-hrgql/internal/shared/response"
)

type CreateEmployeeRequest struct {
	EmployeeCode      string     `json:"employeeCode" validate:"required,employee_code"`
	FirstName         string     `json:"firstName" validate:"required,min=2,max=50,person_name"`
	LastName          string     `json:"lastName" validate:"required,min=2,max=50,person_name"`
	Email             string     `json:"email" validate:"required,email,max=100"`
	Phone             *string    `json:"phone" validate:"omitempty,phone"`
	DateOfBirth       *time.Time `json:"dateOfBirth"`
	Gender            *string    `json:"gender" validate:"omitempty,oneof=male female other"`
	Department        string     `json:"department" validate:"required,max=50"`
	Position          string     `json:"position" validate:"required,max=100"`
	Salary            *float64   `json:"salary" validate:"omitempty,min=0,max=10000000"`
	HireDate          time.Time  `json:"hireDate" validate:"required"`
	ManagerID         *string    `json:"managerId" validate:"omitempty,uuid"`
	Status            string     `json:"status" validate:"omitempty,oneof=active inactive terminated"`
	Address           *string    `json:"address" validate:"omitempty,max=255"`
	City              *string    `json:"city" validate:"omitempty,max=50"`
	State             *string    `json:"state" validate:"omitempty,max=50"`
	ZipCode           *string    `json:"zipCode" validate:"omitempty,max=10"`
	Country           *string    `json:"country" validate:"omitempty,max=50"`
	EmergencyContact  *string    `json:"emergencyContact" validate:"omitempty,max=100"`
	EmergencyPhone    *string    `json:"emergencyPhone" validate:"omitempty,phone"`
	Skills            []string   `json:"skills" validate:"max=20,dive,required,max=50"`
	Experience        *int       `json:"experience" validate:"omitempty,min=0,max=50"`
	Education         *string    `json:"education" validate:"omitempty,max=255"`
	Certifications    []string   `json:"certifications" validate:"max=10,dive,required,max=100"`
	PerformanceRating *float64   `json:"performanceRating" validate:"omitempty,min=0,max=5"`
	AvatarURL         *string    `json:"avatarUrl" validate:"omitempty,url,max=500"`
}

// UpdateEmployeeRequest is a partial update: nil means "leave unchanged".
// An empty string clears an optional field.
type UpdateEmployeeRequest struct {
	EmployeeCode      *string    `json:"employeeCode,omitempty"`
	FirstName         *string    `json:"firstName,omitempty"`
	LastName          *string    `json:"lastName,omitempty"`
	Email             *string    `json:"email,omitempty"`
	Phone             *string    `json:"phone,omitempty"`
	DateOfBirth       *time.Time `json:"dateOfBirth,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	Department        *string    `json:"department,omitempty"`
	Position          *string    `json:"position,omitempty"`
	Salary            *float64   `json:"salary,omitempty"`
	HireDate          *time.Time `json:"hireDate,omitempty"`
	ManagerID         *string    `json:"managerId,omitempty"`
	Status            *string    `json:"status,omitempty"`
	Address           *string    `json:"address,omitempty"`
	City              *string    `json:"city,omitempty"`
	State             *string    `json:"state,omitempty"`
	ZipCode           *string    `json:"zipCode,omitempty"`
	Country           *string    `json:"country,omitempty"`
	EmergencyContact  *string    `json:"emergencyContact,omitempty"`
	EmergencyPhone    *string    `json:"emergencyPhone,omitempty"`
	Skills            *[]string  `json:"skills,omitempty"`
	Experience        *int       `json:"experience,omitempty"`
	Education         *string    `json:"education,omitempty"`
	Certifications    *[]string  `json:"certifications,omitempty"`
	PerformanceRating *float64   `json:"performanceRating,omitempty"`
	AvatarURL         *string    `json:"avatarUrl,omitempty"`
}

type BulkUpdateRequest struct {
	IDs   []string              `json:"ids"`
	Input UpdateEmployeeRequest `json:"input"`
}

type BulkResult struct {
	Success       bool     `json:"success"`
	AffectedCount int      `json:"affectedCount"`
	Errors        []string `json:"errors"`
	Message       string   `json:"message"`
}

type EmployeeFilter struct {
	Search            *string    `json:"search,omitempty"`
	Department        *string    `json:"department,omitempty"`
	Position          *string    `json:"position,omitempty"`
	Status            *string    `json:"status,omitempty"`
	ManagerID         *string    `json:"managerId,omitempty"`
	Gender            *string    `json:"gender,omitempty"`
	City              *string    `json:"city,omitempty"`
	State             *string    `json:"state,omitempty"`
	Country           *string    `json:"country,omitempty"`
	MinAge            *int       `json:"minAge,omitempty"`
	MaxAge            *int       `json:"maxAge,omitempty"`
	MinSalary         *float64   `json:"minSalary,omitempty"`
	MaxSalary         *float64   `json:"maxSalary,omitempty"`
	MinExperience     *int       `json:"minExperience,omitempty"`
	MaxExperience     *int       `json:"maxExperience,omitempty"`
	HiredAfter        *time.Time `json:"hiredAfter,omitempty"`
	HiredBefore       *time.Time `json:"hiredBefore,omitempty"`
	HasManager        *bool      `json:"hasManager,omitempty"`
	Skills            []string   `json:"skills,omitempty"`
	PerformanceRating *float64   `json:"performanceRating,omitempty"`
}

type ListEmployeesRequest struct {
	Page      int            `json:"page"`
	Limit     int            `json:"limit"`
	SortBy    string         `json:"sortBy"`
	SortOrder string         `json:"sortOrder"`
	Filters   EmployeeFilter `json:"filters"`
}

type EmployeeResponse struct {
	ID                string     `json:"id"`
	EmployeeCode      string     `json:"employeeCode"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             *string    `json:"phone"`
	DateOfBirth       *time.Time `json:"dateOfBirth"`
	Age               *int       `json:"age"`
	Gender            *string    `json:"gender"`
	Department        string     `json:"department"`
	Position          string     `json:"position"`
	Salary            *float64   `json:"salary"`
	HireDate          time.Time  `json:"hireDate"`
	ManagerID         *string    `json:"managerId"`
	Status            string     `json:"status"`
	Address           *string    `json:"address"`
	City              *string    `json:"city"`
	State             *string    `json:"state"`
	ZipCode           *string    `json:"zipCode"`
	Country           *string    `json:"country"`
	EmergencyContact  *string    `json:"emergencyContact"`
	EmergencyPhone    *string    `json:"emergencyPhone"`
	Skills            []string   `json:"skills"`
	Experience        *int       `json:"experience"`
	Education         *string    `json:"education"`
	Certifications    []string   `json:"certifications"`
	PerformanceRating *float64   `json:"performanceRating"`
	AvatarURL         *string    `json:"avatarUrl"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type EmployeePage struct {
	Items      []EmployeeResponse `json:"items"`
	Pagination response.PageInfo  `json:"pagination"`
}

type DepartmentCount struct {
	Department    string   `json:"department" gorm:"column:department"`
	Count         int64    `json:"count" gorm:"column:count"`
	AverageSalary *float64 `json:"averageSalary" gorm:"column:average_salary"`
}

type EmployeeStats struct {
	TotalEmployees      int64             `json:"totalEmployees" gorm:"column:total_employees"`
	ActiveEmployees     int64             `json:"activeEmployees" gorm:"column:active_employees"`
	InactiveEmployees   int64             `json:"inactiveEmployees" gorm:"column:inactive_employees"`
	TerminatedEmployees int64             `json:"terminatedEmployees" gorm:"column:terminated_employees"`
	AverageAge          *float64          `json:"averageAge" gorm:"column:average_age"`
	AverageSalary       *float64          `json:"averageSalary" gorm:"column:average_salary"`
	TotalSalaryExpense  float64           `json:"totalSalaryExpense" gorm:"column:total_salary_expense"`
	NewHiresThisMonth   int64             `json:"newHiresThisMonth" gorm:"column:new_hires_this_month"`
	NewHiresThisYear    int64             `json:"newHiresThisYear" gorm:"column:new_hires_this_year"`
	DepartmentCounts    []DepartmentCount `json:"departmentCounts" gorm:"-"`
}

func mapEmployeeResponse(e Employee, now time.Time) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                e.ID.String(),
		EmployeeCode:      e.EmployeeCode,
		FirstName:         e.FirstName,
		LastName:          e.LastName,
		Name:              e.FullName(),
		Email:             e.Email,
		Phone:             e.Phone,
		DateOfBirth:       e.DateOfBirth,
		Age:               e.AgeAt(now),
		Gender:            e.Gender,
		Department:        e.Department,
		Position:          e.Position,
		Salary:            e.Salary,
		HireDate:          e.HireDate,
		Status:            e.Status,
		Address:           e.Address,
		City:              e.City,
		State:             e.State,
		ZipCode:           e.ZipCode,
		Country:           e.Country,
		EmergencyContact:  e.EmergencyContact,
		EmergencyPhone:    e.EmergencyPhone,
		Skills:            nonNil(e.Skills),
		Experience:        e.Experience,
		Education:         e.Education,
		Certifications:    nonNil(e.Certifications),
		PerformanceRating: e.PerformanceRating,
		AvatarURL:         e.AvatarURL,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	if e.ManagerID != nil {
		id := e.ManagerID.String()
		resp.ManagerID = &id
	}
	return resp
}

func mapEmployeeResponses(items []Employee, now time.Time) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(items))
	for _, e := range items {
		out = append(out, mapEmployeeResponse(e, now))
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
