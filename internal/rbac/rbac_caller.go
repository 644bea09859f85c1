package rbac

import (
	"context"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

const (
	ResourceEmployee = "employee"
	ResourceStats    = "stats"
	ResourceUser     = "user"
)

const (
	ActionRead       = "read"
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionUpdateSelf = "update_self"
	ActionDelete     = "delete"
	ActionBulk       = "bulk"
	ActionRegister   = "register"
)

// Caller is the authenticated principal attached to a request.
type Caller struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}

type ctxKey int

const (
	callerKey ctxKey = iota
	authErrKey
)

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	return c, ok
}

// WithAuthError records that the request carried a token that failed
// verification. Anonymous operations ignore it; RequireAuth returns it.
func WithAuthError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, authErrKey, err)
}

func authErrorFromContext(ctx context.Context) error {
	err, _ := ctx.Value(authErrKey).(error)
	return err
}
