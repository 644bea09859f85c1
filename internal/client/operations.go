package client

import (
	"context"
	"strings"
)

const employeeFields = `
	id employeeCode firstName lastName name email phone dateOfBirth age gender
	department position salary hireDate status
	manager { id employeeCode name }
	city state country skills experience certifications performanceRating avatarUrl
	createdAt updatedAt`

const userFields = `id email role employeeId employee { id employeeCode name }`

func (c *Client) Login(ctx context.Context, email, password string) (AuthPayload, error) {
	var out struct {
		Login AuthPayload `json:"login"`
	}
	err := c.Do(ctx, `mutation Login($input: LoginInput!) {
  login(input: $input) { token expiresIn user { `+userFields+` } }
}`, map[string]any{"input": map[string]any{"email": email, "password": password}}, &out)
	return out.Login, err
}

// Register creates an account. role is an API enum value; empty keeps the
// server default.
func (c *Client) Register(ctx context.Context, email, password, role string) (AuthPayload, error) {
	input := map[string]any{"email": email, "password": password}
	if role != "" {
		input["role"] = strings.ToUpper(role)
	}
	var out struct {
		Register AuthPayload `json:"register"`
	}
	err := c.Do(ctx, `mutation Register($input: RegisterInput!) {
  register(input: $input) { token expiresIn user { `+userFields+` } }
}`, map[string]any{"input": input}, &out)
	return out.Register, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, `mutation { logout }`, nil, nil)
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return c.Do(ctx, `mutation ChangePassword($old: String!, $new: String!) {
  changePassword(oldPassword: $old, newPassword: $new)
}`, map[string]any{"old": oldPassword, "new": newPassword}, nil)
}

// Me returns nil when the request is anonymous.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		Me *User `json:"me"`
	}
	err := c.Do(ctx, `{ me { `+userFields+` } }`, nil, &out)
	return out.Me, err
}

func (c *Client) ListEmployees(ctx context.Context, p ListParams) (EmployeePage, error) {
	vars := map[string]any{}
	if p.Page > 0 {
		vars["page"] = p.Page
	}
	if p.Limit > 0 {
		vars["limit"] = p.Limit
	}
	if p.SortBy != "" {
		vars["sortBy"] = p.SortBy
	}
	if p.SortOrder != "" {
		vars["sortOrder"] = strings.ToUpper(p.SortOrder)
	}
	if len(p.Filters) > 0 {
		vars["filters"] = p.Filters
	}

	var out struct {
		Employees EmployeePage `json:"employees"`
	}
	err := c.Do(ctx, `query Employees($page: Int, $limit: Int, $sortBy: String, $sortOrder: SortOrder, $filters: EmployeeFilters) {
  employees(page: $page, limit: $limit, sortBy: $sortBy, sortOrder: $sortOrder, filters: $filters) {
    items {`+employeeFields+` }
    pagination { totalItems totalPages currentPage hasNextPage hasPreviousPage }
  }
}`, vars, &out)
	return out.Employees, err
}

// GetEmployee returns nil when no employee has the id.
func (c *Client) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	var out struct {
		Employee *Employee `json:"employee"`
	}
	err := c.Do(ctx, `query Employee($id: ID!) {
  employee(id: $id) {`+employeeFields+`
    directReports { id employeeCode name }
  }
}`, map[string]any{"id": id}, &out)
	return out.Employee, notFoundAsNil(err)
}

func (c *Client) GetEmployeeByCode(ctx context.Context, code string) (*Employee, error) {
	var out struct {
		Employee *Employee `json:"employeeByCode"`
	}
	err := c.Do(ctx, `query EmployeeByCode($code: String!) {
  employeeByCode(employeeCode: $code) {`+employeeFields+` }
}`, map[string]any{"code": code}, &out)
	return out.Employee, notFoundAsNil(err)
}

// notFoundAsNil lets single lookups report a missing employee as nil.
func notFoundAsNil(err error) error {
	if HasCode(err, "NOT_FOUND") {
		return nil
	}
	return err
}

func (c *Client) SearchEmployees(ctx context.Context, query string, limit int) ([]Employee, error) {
	vars := map[string]any{"query": query}
	if limit > 0 {
		vars["limit"] = limit
	}
	var out struct {
		Search []Employee `json:"searchEmployees"`
	}
	err := c.Do(ctx, `query Search($query: String!, $limit: Int) {
  searchEmployees(query: $query, limit: $limit) {`+employeeFields+` }
}`, vars, &out)
	return out.Search, err
}

func (c *Client) Managers(ctx context.Context) ([]Employee, error) {
	var out struct {
		Managers []Employee `json:"managers"`
	}
	err := c.Do(ctx, `{ managers {`+employeeFields+` } }`, nil, &out)
	return out.Managers, err
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out struct {
		Stats Stats `json:"employeeStats"`
	}
	err := c.Do(ctx, `{
  employeeStats {
    totalEmployees activeEmployees inactiveEmployees terminatedEmployees
    departmentCounts { department count averageSalary }
    averageAge averageSalary totalSalaryExpense newHiresThisMonth newHiresThisYear
  }
}`, nil, &out)
	return out.Stats, err
}

func (c *Client) Departments(ctx context.Context) ([]string, error) {
	var out struct {
		Departments []string `json:"departments"`
	}
	err := c.Do(ctx, `{ departments }`, nil, &out)
	return out.Departments, err
}

func (c *Client) Positions(ctx context.Context) ([]string, error) {
	var out struct {
		Positions []string `json:"positions"`
	}
	err := c.Do(ctx, `{ positions }`, nil, &out)
	return out.Positions, err
}

// CreateEmployee sends input as an EmployeeInput object.
func (c *Client) CreateEmployee(ctx context.Context, input map[string]any) (Employee, error) {
	var out struct {
		Employee Employee `json:"createEmployee"`
	}
	err := c.Do(ctx, `mutation Create($input: EmployeeInput!) {
  createEmployee(input: $input) {`+employeeFields+` }
}`, map[string]any{"input": input}, &out)
	return out.Employee, err
}

// UpdateEmployee sends input as an EmployeeUpdateInput; omitted keys are
// left unchanged server side.
func (c *Client) UpdateEmployee(ctx context.Context, id string, input map[string]any) (Employee, error) {
	var out struct {
		Employee Employee `json:"updateEmployee"`
	}
	err := c.Do(ctx, `mutation Update($id: ID!, $input: EmployeeUpdateInput!) {
  updateEmployee(id: $id, input: $input) {`+employeeFields+` }
}`, map[string]any{"id": id, "input": input}, &out)
	return out.Employee, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.Do(ctx, `mutation Delete($id: ID!) { deleteEmployee(id: $id) }`, map[string]any{"id": id}, nil)
}

func (c *Client) BulkUpdateEmployees(ctx context.Context, ids []string, input map[string]any) (BulkResult, error) {
	var out struct {
		Result BulkResult `json:"bulkUpdateEmployees"`
	}
	err := c.Do(ctx, `mutation BulkUpdate($ids: [ID!]!, $input: EmployeeUpdateInput!) {
  bulkUpdateEmployees(ids: $ids, input: $input) { success affectedCount errors message }
}`, map[string]any{"ids": ids, "input": input}, &out)
	return out.Result, err
}

func (c *Client) BulkDeleteEmployees(ctx context.Context, ids []string) (BulkResult, error) {
	var out struct {
		Result BulkResult `json:"bulkDeleteEmployees"`
	}
	err := c.Do(ctx, `mutation BulkDelete($ids: [ID!]!) {
  bulkDeleteEmployees(ids: $ids) { success affectedCount errors message }
}`, map[string]any{"ids": ids}, &out)
	return out.Result, err
}

type StatusAction string

const (
	Activate   StatusAction = "activateEmployee"
	Deactivate StatusAction = "deactivateEmployee"
	Terminate  StatusAction = "terminateEmployee"
)

func (c *Client) SetStatus(ctx context.Context, id string, action StatusAction) (Employee, error) {
	var out map[string]Employee
	err := c.Do(ctx, `mutation Status($id: ID!) {
  `+string(action)+`(id: $id) {`+employeeFields+` }
}`, map[string]any{"id": id}, &out)
	return out[string(action)], err
}
