package gql

import (
	"context"

	"go-hrgql/internal/auth"
	"go-hrgql/internal/employee"

	graphql "github.com/graph-gophers/graphql-go"
)

func (r *Resolver) Login(ctx context.Context, args struct{ Input loginInput }) (*authPayloadResolver, error) {
	payload, err := r.auth.Login(ctx, auth.LoginRequest{
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
	if err != nil {
		return nil, r.fail(ctx, "login", err)
	}
	return &authPayloadResolver{root: r, p: payload}, nil
}

func (r *Resolver) Register(ctx context.Context, args struct{ Input registerInput }) (*authPayloadResolver, error) {
	payload, err := r.auth.Register(ctx, args.Input.toRequest())
	if err != nil {
		return nil, r.fail(ctx, "register", err)
	}
	return &authPayloadResolver{root: r, p: payload}, nil
}

func (r *Resolver) Logout(ctx context.Context) (bool, error) {
	if err := r.auth.Logout(ctx); err != nil {
		return false, r.fail(ctx, "logout", err)
	}
	return true, nil
}

func (r *Resolver) ChangePassword(ctx context.Context, args struct {
	OldPassword string
	NewPassword string
}) (bool, error) {
	if err := r.auth.ChangePassword(ctx, args.OldPassword, args.NewPassword); err != nil {
		return false, r.fail(ctx, "changePassword", err)
	}
	return true, nil
}

func (r *Resolver) CreateEmployee(ctx context.Context, args struct{ Input employeeInput }) (*employeeResolver, error) {
	e, err := r.employees.Create(ctx, args.Input.toRequest())
	if err != nil {
		return nil, r.fail(ctx, "createEmployee", err)
	}
	return r.employee(e), nil
}

func (r *Resolver) UpdateEmployee(ctx context.Context, args struct {
	ID    graphql.ID
	Input employeeUpdateInput
}) (*employeeResolver, error) {
	e, err := r.employees.Update(ctx, string(args.ID), args.Input.toRequest())
	if err != nil {
		return nil, r.fail(ctx, "updateEmployee", err)
	}
	return r.employee(e), nil
}

func (r *Resolver) DeleteEmployee(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	if err := r.employees.Delete(ctx, string(args.ID)); err != nil {
		return false, r.fail(ctx, "deleteEmployee", err)
	}
	return true, nil
}

func (r *Resolver) BulkUpdateEmployees(ctx context.Context, args struct {
	IDs   []graphql.ID
	Input employeeUpdateInput
}) (bulkResultResolver, error) {
	res, err := r.employees.BulkUpdate(ctx, employee.BulkUpdateRequest{
		IDs:   idStrings(args.IDs),
		Input: args.Input.toRequest(),
	})
	if err != nil {
		return bulkResultResolver{}, r.fail(ctx, "bulkUpdateEmployees", err)
	}
	return bulkResultResolver{r: res}, nil
}

func (r *Resolver) BulkDeleteEmployees(ctx context.Context, args struct{ IDs []graphql.ID }) (bulkResultResolver, error) {
	res, err := r.employees.BulkDelete(ctx, idStrings(args.IDs))
	if err != nil {
		return bulkResultResolver{}, r.fail(ctx, "bulkDeleteEmployees", err)
	}
	return bulkResultResolver{r: res}, nil
}

func (r *Resolver) ActivateEmployee(ctx context.Context, args struct{ ID graphql.ID }) (*employeeResolver, error) {
	return r.setStatus(ctx, "activateEmployee", args.ID, employee.StatusActive)
}

func (r *Resolver) DeactivateEmployee(ctx context.Context, args struct{ ID graphql.ID }) (*employeeResolver, error) {
	return r.setStatus(ctx, "deactivateEmployee", args.ID, employee.StatusInactive)
}

func (r *Resolver) TerminateEmployee(ctx context.Context, args struct{ ID graphql.ID }) (*employeeResolver, error) {
	return r.setStatus(ctx, "terminateEmployee", args.ID, employee.StatusTerminated)
}

func (r *Resolver) setStatus(ctx context.Context, op string, id graphql.ID, status string) (*employeeResolver, error) {
	e, err := r.employees.SetStatus(ctx, string(id), status)
	if err != nil {
		return nil, r.fail(ctx, op, err)
	}
	return r.employee(e), nil
}
