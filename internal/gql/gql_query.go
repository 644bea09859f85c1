package gql

import (
	"context"
	"errors"

	"go-hrgql/internal/employee"
	rbacerrors "go-hrgql/internal/rbac/errors"

	graphql "github.com/graph-gophers/graphql-go"
)

type employeesArgs struct {
	Page      int32
	Limit     int32
	SortBy    string
	SortOrder string
	Filters   *employeeFiltersInput
}

func (r *Resolver) Employees(ctx context.Context, args employeesArgs) (*employeePageResolver, error) {
	page, err := r.employees.List(ctx, employee.ListEmployeesRequest{
		Page:      int(args.Page),
		Limit:     int(args.Limit),
		SortBy:    args.SortBy,
		SortOrder: args.SortOrder,
		Filters:   args.Filters.toFilter(),
	})
	if err != nil {
		return nil, r.fail(ctx, "employees", err)
	}

	return &employeePageResolver{
		items:      r.employeeList(page.Items),
		pagination: page.Pagination,
	}, nil
}

// Employee reports NOT_FOUND when the id does not resolve.
func (r *Resolver) Employee(ctx context.Context, args struct{ ID graphql.ID }) (*employeeResolver, error) {
	e, err := r.employees.GetByID(ctx, string(args.ID))
	if err != nil {
		return nil, r.fail(ctx, "employee", err)
	}
	return r.employee(e), nil
}

func (r *Resolver) EmployeeByCode(ctx context.Context, args struct{ EmployeeCode string }) (*employeeResolver, error) {
	e, err := r.employees.GetByCode(ctx, args.EmployeeCode)
	if err != nil {
		return nil, r.fail(ctx, "employeeByCode", err)
	}
	return r.employee(e), nil
}

func (r *Resolver) SearchEmployees(ctx context.Context, args struct {
	Query string
	Limit int32
}) ([]*employeeResolver, error) {
	items, err := r.employees.Search(ctx, args.Query, int(args.Limit))
	if err != nil {
		return nil, r.fail(ctx, "searchEmployees", err)
	}
	return r.employeeList(items), nil
}

func (r *Resolver) Managers(ctx context.Context) ([]*employeeResolver, error) {
	items, err := r.employees.ListManagers(ctx)
	if err != nil {
		return nil, r.fail(ctx, "managers", err)
	}
	return r.employeeList(items), nil
}

// Me is null for anonymous callers; a rejected token is still an error.
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	u, err := r.auth.Me(ctx)
	if err != nil {
		if errors.Is(err, rbacerrors.ErrNotLoggedIn) {
			return nil, nil
		}
		return nil, r.fail(ctx, "me", err)
	}
	return &userResolver{root: r, u: u}, nil
}

func (r *Resolver) EmployeeStats(ctx context.Context) (*statsResolver, error) {
	stats, err := r.employees.Stats(ctx)
	if err != nil {
		return nil, r.fail(ctx, "employeeStats", err)
	}
	return &statsResolver{s: stats}, nil
}

func (r *Resolver) Departments(ctx context.Context) ([]string, error) {
	items, err := r.catalog.ListDepartments(ctx)
	if err != nil {
		return nil, r.fail(ctx, "departments", err)
	}
	return items, nil
}

func (r *Resolver) Positions(ctx context.Context) ([]string, error) {
	items, err := r.catalog.ListPositions(ctx)
	if err != nil {
		return nil, r.fail(ctx, "positions", err)
	}
	return items, nil
}
