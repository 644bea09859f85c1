package client

import "time"

type EmployeeRef struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employeeCode"`
	Name         string `json:"name"`
}

type Employee struct {
	ID                string        `json:"id"`
	EmployeeCode      string        `json:"employeeCode"`
	FirstName         string        `json:"firstName"`
	LastName          string        `json:"lastName"`
	Name              string        `json:"name"`
	Email             string        `json:"email"`
	Phone             *string       `json:"phone"`
	DateOfBirth       *time.Time    `json:"dateOfBirth"`
	Age               *int          `json:"age"`
	Gender            *string       `json:"gender"`
	Department        string        `json:"department"`
	Position          string        `json:"position"`
	Salary            *float64      `json:"salary"`
	HireDate          time.Time     `json:"hireDate"`
	Status            string        `json:"status"`
	Manager           *EmployeeRef  `json:"manager"`
	DirectReports     []EmployeeRef `json:"directReports"`
	City              *string       `json:"city"`
	State             *string       `json:"state"`
	Country           *string       `json:"country"`
	Skills            []string      `json:"skills"`
	Experience        *int          `json:"experience"`
	Certifications    []string      `json:"certifications"`
	PerformanceRating *float64      `json:"performanceRating"`
	AvatarURL         *string       `json:"avatarUrl"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

type Pagination struct {
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	CurrentPage     int  `json:"currentPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type EmployeePage struct {
	Items      []Employee `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type DepartmentCount struct {
	Department    string   `json:"department"`
	Count         int      `json:"count"`
	AverageSalary *float64 `json:"averageSalary"`
}

type Stats struct {
	TotalEmployees      int               `json:"totalEmployees"`
	ActiveEmployees     int               `json:"activeEmployees"`
	InactiveEmployees   int               `json:"inactiveEmployees"`
	TerminatedEmployees int               `json:"terminatedEmployees"`
	DepartmentCounts    []DepartmentCount `json:"departmentCounts"`
	AverageAge          *float64          `json:"averageAge"`
	AverageSalary       *float64          `json:"averageSalary"`
	TotalSalaryExpense  float64           `json:"totalSalaryExpense"`
	NewHiresThisMonth   int               `json:"newHiresThisMonth"`
	NewHiresThisYear    int               `json:"newHiresThisYear"`
}

type User struct {
	ID         string       `json:"id"`
	Email      string       `json:"email"`
	Role       string       `json:"role"`
	EmployeeID *string      `json:"employeeId"`
	Employee   *EmployeeRef `json:"employee"`
}

type AuthPayload struct {
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
	User      User   `json:"user"`
}

type BulkResult struct {
	Success       bool     `json:"success"`
	AffectedCount int      `json:"affectedCount"`
	Errors        []string `json:"errors"`
	Message       string   `json:"message"`
}

// ListParams mirrors the employees query arguments. Filters keys are
// EmployeeFilters field names.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Filters   map[string]any
}
