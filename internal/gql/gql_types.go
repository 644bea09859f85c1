package gql

import (
	"context"
	"strings"

	"go-hrgql/internal/auth"
	"go-hrgql/internal/employee"
	"go-hrgql/internal/shared/response"

	graphql "github.com/graph-gophers/graphql-go"
)

// Enum values are stored lowercase and exposed uppercase.
func enumOut(v string) string { return strings.ToUpper(v) }

func enumOutPtr(v *string) *string {
	if v == nil {
		return nil
	}
	s := enumOut(*v)
	return &s
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	i := int32(*v)
	return &i
}

func idPtr(v *string) *graphql.ID {
	if v == nil {
		return nil
	}
	id := graphql.ID(*v)
	return &id
}

type employeeResolver struct {
	root *Resolver
	e    employee.EmployeeResponse
}

func (r *Resolver) employee(e employee.EmployeeResponse) *employeeResolver {
	return &employeeResolver{root: r, e: e}
}

func (r *Resolver) employeeList(items []employee.EmployeeResponse) []*employeeResolver {
	out := make([]*employeeResolver, 0, len(items))
	for _, e := range items {
		out = append(out, r.employee(e))
	}
	return out
}

func (e *employeeResolver) ID() graphql.ID              { return graphql.ID(e.e.ID) }
func (e *employeeResolver) EmployeeCode() string        { return e.e.EmployeeCode }
func (e *employeeResolver) FirstName() string           { return e.e.FirstName }
func (e *employeeResolver) LastName() string            { return e.e.LastName }
func (e *employeeResolver) Name() string                { return e.e.Name }
func (e *employeeResolver) Email() string               { return e.e.Email }
func (e *employeeResolver) Phone() *string              { return e.e.Phone }
func (e *employeeResolver) DateOfBirth() *DateTime      { return optionalDateTime(e.e.DateOfBirth) }
func (e *employeeResolver) Age() *int32                 { return int32Ptr(e.e.Age) }
func (e *employeeResolver) Gender() *string             { return enumOutPtr(e.e.Gender) }
func (e *employeeResolver) Department() string          { return e.e.Department }
func (e *employeeResolver) Position() string            { return e.e.Position }
func (e *employeeResolver) Salary() *float64            { return e.e.Salary }
func (e *employeeResolver) HireDate() DateTime          { return newDateTime(e.e.HireDate) }
func (e *employeeResolver) ManagerID() *graphql.ID      { return idPtr(e.e.ManagerID) }
func (e *employeeResolver) Status() string              { return enumOut(e.e.Status) }
func (e *employeeResolver) Address() *string            { return e.e.Address }
func (e *employeeResolver) City() *string               { return e.e.City }
func (e *employeeResolver) State() *string              { return e.e.State }
func (e *employeeResolver) ZipCode() *string            { return e.e.ZipCode }
func (e *employeeResolver) Country() *string            { return e.e.Country }
func (e *employeeResolver) EmergencyContact() *string   { return e.e.EmergencyContact }
func (e *employeeResolver) EmergencyPhone() *string     { return e.e.EmergencyPhone }
func (e *employeeResolver) Skills() []string            { return e.e.Skills }
func (e *employeeResolver) Experience() *int32          { return int32Ptr(e.e.Experience) }
func (e *employeeResolver) Education() *string          { return e.e.Education }
func (e *employeeResolver) Certifications() []string    { return e.e.Certifications }
func (e *employeeResolver) PerformanceRating() *float64 { return e.e.PerformanceRating }
func (e *employeeResolver) AvatarURL() *string          { return e.e.AvatarURL }
func (e *employeeResolver) CreatedAt() DateTime         { return newDateTime(e.e.CreatedAt) }
func (e *employeeResolver) UpdatedAt() DateTime         { return newDateTime(e.e.UpdatedAt) }

// Manager is resolved lazily, one lookup per selected field. A dangling
// reference resolves to null.
func (e *employeeResolver) Manager(ctx context.Context) (*employeeResolver, error) {
	if e.e.ManagerID == nil {
		return nil, nil
	}
	m, err := e.root.employees.GetByID(ctx, *e.e.ManagerID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, e.root.fail(ctx, "Employee.manager", err)
	}
	return e.root.employee(m), nil
}

func (e *employeeResolver) DirectReports(ctx context.Context) ([]*employeeResolver, error) {
	items, err := e.root.employees.ListDirectReports(ctx, e.e.ID)
	if err != nil {
		return nil, e.root.fail(ctx, "Employee.directReports", err)
	}
	return e.root.employeeList(items), nil
}

type pageInfoResolver struct {
	p response.PageInfo
}

func (p pageInfoResolver) TotalItems() int32     { return int32(p.p.TotalItems) }
func (p pageInfoResolver) TotalPages() int32     { return int32(p.p.TotalPages) }
func (p pageInfoResolver) CurrentPage() int32    { return int32(p.p.CurrentPage) }
func (p pageInfoResolver) HasNextPage() bool     { return p.p.HasNextPage }
func (p pageInfoResolver) HasPreviousPage() bool { return p.p.HasPreviousPage }

type employeePageResolver struct {
	items      []*employeeResolver
	pagination response.PageInfo
}

func (p *employeePageResolver) Items() []*employeeResolver { return p.items }
func (p *employeePageResolver) Pagination() pageInfoResolver {
	return pageInfoResolver{p: p.pagination}
}

type departmentCountResolver struct {
	d employee.DepartmentCount
}

func (d departmentCountResolver) Department() string      { return d.d.Department }
func (d departmentCountResolver) Count() int32            { return int32(d.d.Count) }
func (d departmentCountResolver) AverageSalary() *float64 { return d.d.AverageSalary }

type statsResolver struct {
	s employee.EmployeeStats
}

func (s *statsResolver) TotalEmployees() int32       { return int32(s.s.TotalEmployees) }
func (s *statsResolver) ActiveEmployees() int32      { return int32(s.s.ActiveEmployees) }
func (s *statsResolver) InactiveEmployees() int32    { return int32(s.s.InactiveEmployees) }
func (s *statsResolver) TerminatedEmployees() int32  { return int32(s.s.TerminatedEmployees) }
func (s *statsResolver) AverageAge() *float64        { return s.s.AverageAge }
func (s *statsResolver) AverageSalary() *float64     { return s.s.AverageSalary }
func (s *statsResolver) TotalSalaryExpense() float64 { return s.s.TotalSalaryExpense }
func (s *statsResolver) NewHiresThisMonth() int32    { return int32(s.s.NewHiresThisMonth) }
func (s *statsResolver) NewHiresThisYear() int32     { return int32(s.s.NewHiresThisYear) }

func (s *statsResolver) DepartmentCounts() []departmentCountResolver {
	out := make([]departmentCountResolver, 0, len(s.s.DepartmentCounts))
	for _, d := range s.s.DepartmentCounts {
		out = append(out, departmentCountResolver{d: d})
	}
	return out
}

type bulkResultResolver struct {
	r employee.BulkResult
}

func (b bulkResultResolver) Success() bool        { return b.r.Success }
func (b bulkResultResolver) AffectedCount() int32 { return int32(b.r.AffectedCount) }
func (b bulkResultResolver) Message() string      { return b.r.Message }

func (b bulkResultResolver) Errors() []string {
	if b.r.Errors == nil {
		return []string{}
	}
	return b.r.Errors
}

type userResolver struct {
	root *Resolver
	u    auth.UserResponse
}

func (u *userResolver) ID() graphql.ID          { return graphql.ID(u.u.ID) }
func (u *userResolver) Email() string           { return u.u.Email }
func (u *userResolver) Role() string            { return enumOut(u.u.Role) }
func (u *userResolver) EmployeeID() *graphql.ID { return idPtr(u.u.EmployeeID) }
func (u *userResolver) CreatedAt() DateTime     { return newDateTime(u.u.CreatedAt) }
func (u *userResolver) UpdatedAt() DateTime     { return newDateTime(u.u.UpdatedAt) }

func (u *userResolver) Employee(ctx context.Context) (*employeeResolver, error) {
	if u.u.EmployeeID == nil {
		return nil, nil
	}
	e, err := u.root.employees.GetByID(ctx, *u.u.EmployeeID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, u.root.fail(ctx, "User.employee", err)
	}
	return u.root.employee(e), nil
}

type authPayloadResolver struct {
	root *Resolver
	p    auth.AuthPayload
}

func (a *authPayloadResolver) Token() string     { return a.p.Token }
func (a *authPayloadResolver) ExpiresIn() string { return a.p.ExpiresIn }
func (a *authPayloadResolver) User() *userResolver {
	return &userResolver{root: a.root, u: a.p.User}
}
