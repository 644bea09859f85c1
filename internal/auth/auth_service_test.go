package auth_test

import (
	"context"
	"testing"
	"time"

	"go-hrgql/internal/auth"
	autherrors "go-hrgql/internal/auth/errors"
	authMock "go-hrgql/internal/auth/mock"
	"go-hrgql/internal/rbac"
	rbacerrors "go-hrgql/internal/rbac/errors"
	"go-hrgql/internal/rbac/infra"
	"go-hrgql/internal/user"
	usererrors "go-hrgql/internal/user/errors"
	userMock "go-hrgql/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type authDeps struct {
	users  *userMock.MockService
	tokens *authMock.MockTokenService
	svc    auth.Service
}

func setupAuth(t *testing.T) *authDeps {
	ctrl := gomock.NewController(t)
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	users := userMock.NewMockService(ctrl)
	tokens := authMock.NewMockTokenService(ctrl)
	return &authDeps{
		users:  users,
		tokens: tokens,
		svc:    auth.NewService(users, tokens, rbac.NewService(enforcer)),
	}
}

func asCaller(role string) context.Context {
	return rbac.WithCaller(context.Background(), rbac.Caller{UserID: uuid.New(), Email: role + "@company.com", Role: role})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	admin := user.User{ID: uuid.New(), Email: "admin@company.com", Role: "admin", CreatedAt: time.Now()}

	t.Run("success", func(t *testing.T) {
		deps := setupAuth(t)
		deps.users.EXPECT().Authenticate(ctx, "admin@company.com", "admin123").Return(admin, nil)
		deps.tokens.EXPECT().Issue(admin).Return("jwt-token", nil)
		deps.tokens.EXPECT().ExpiresIn().Return("24h")

		payload, err := deps.svc.Login(ctx, auth.LoginRequest{Email: "admin@company.com", Password: "admin123"})

		assert.NoError(t, err)
		assert.Equal(t, "jwt-token", payload.Token)
		assert.Equal(t, "24h", payload.ExpiresIn)
		assert.Equal(t, "admin", payload.User.Role)
		assert.Equal(t, admin.ID.String(), payload.User.ID)
	})

	t.Run("wrong password returns no token", func(t *testing.T) {
		deps := setupAuth(t)
		deps.users.EXPECT().Authenticate(ctx, "admin@company.com", "wrong").Return(user.User{}, usererrors.ErrInvalidCredentials)

		payload, err := deps.svc.Login(ctx, auth.LoginRequest{Email: "admin@company.com", Password: "wrong"})

		assert.ErrorIs(t, err, usererrors.ErrInvalidCredentials)
		assert.Empty(t, payload.Token)
	})

	t.Run("missing password", func(t *testing.T) {
		deps := setupAuth(t)

		_, err := deps.svc.Login(ctx, auth.LoginRequest{Email: "admin@company.com"})
		assert.EqualError(t, err, "Password is required")
	})
}

func TestService_Register(t *testing.T) {
	t.Run("anonymous employee registration", func(t *testing.T) {
		deps := setupAuth(t)
		ctx := context.Background()
		empID := uuid.New()
		created := user.User{ID: uuid.New(), Email: "jane@company.com", Role: "employee", EmployeeID: &empID}

		deps.users.EXPECT().
			Create(ctx, user.CreateUserRequest{Email: "jane@company.com", Password: "password123", Role: "employee"}).
			Return(created, nil)
		deps.tokens.EXPECT().Issue(created).Return("tok", nil)
		deps.tokens.EXPECT().ExpiresIn().Return("24h")

		payload, err := deps.svc.Register(ctx, auth.RegisterRequest{Email: "jane@company.com", Password: "password123"})

		assert.NoError(t, err)
		assert.Equal(t, "tok", payload.Token)
		assert.Equal(t, empID.String(), *payload.User.EmployeeID)
	})

	t.Run("anonymous cannot register admin", func(t *testing.T) {
		deps := setupAuth(t)

		_, err := deps.svc.Register(context.Background(), auth.RegisterRequest{Email: "x@company.com", Password: "password123", Role: "ADMIN"})
		assert.ErrorIs(t, err, autherrors.ErrRegistrationForbidden)
	})

	t.Run("authenticated non-admin forbidden", func(t *testing.T) {
		deps := setupAuth(t)

		_, err := deps.svc.Register(asCaller(rbac.RoleHR), auth.RegisterRequest{Email: "x@company.com", Password: "password123"})
		assert.ErrorIs(t, err, rbacerrors.ErrForbidden)
	})

	t.Run("admin registers hr", func(t *testing.T) {
		deps := setupAuth(t)
		ctx := asCaller(rbac.RoleAdmin)
		created := user.User{ID: uuid.New(), Email: "hr2@company.com", Role: "hr"}

		deps.users.EXPECT().
			Create(ctx, user.CreateUserRequest{Email: "hr2@company.com", Password: "password123", Role: "hr"}).
			Return(created, nil)
		deps.tokens.EXPECT().Issue(created).Return("tok", nil)
		deps.tokens.EXPECT().ExpiresIn().Return("24h")

		payload, err := deps.svc.Register(ctx, auth.RegisterRequest{Email: "hr2@company.com", Password: "password123", Role: "HR"})

		assert.NoError(t, err)
		assert.Equal(t, "hr", payload.User.Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		deps := setupAuth(t)

		_, err := deps.svc.Register(context.Background(), auth.RegisterRequest{Email: "x@company.com", Password: "password123", Role: "owner"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setupAuth(t)
		deps.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(user.User{}, usererrors.ErrUserAlreadyExists)

		_, err := deps.svc.Register(context.Background(), auth.RegisterRequest{Email: "x@company.com", Password: "password123"})
		assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
	})
}

func TestService_Me(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		deps := setupAuth(t)

		_, err := deps.svc.Me(context.Background())
		assert.ErrorIs(t, err, rbacerrors.ErrNotLoggedIn)
	})

	t.Run("expired token surfaces as expired", func(t *testing.T) {
		deps := setupAuth(t)
		ctx := rbac.WithAuthError(context.Background(), autherrors.ErrTokenExpired)

		_, err := deps.svc.Me(ctx)
		assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupAuth(t)
		id := uuid.New()
		ctx := rbac.WithCaller(context.Background(), rbac.Caller{UserID: id, Role: "employee"})

		deps.users.EXPECT().GetByID(ctx, id).Return(user.User{ID: id, Email: "me@company.com", Role: "employee"}, nil)

		me, err := deps.svc.Me(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "me@company.com", me.Email)
		assert.Nil(t, me.EmployeeID)
	})
}

func TestService_ChangePasswordAndLogout(t *testing.T) {
	deps := setupAuth(t)
	id := uuid.New()
	ctx := rbac.WithCaller(context.Background(), rbac.Caller{UserID: id, Role: "employee"})

	deps.users.EXPECT().
		ChangePassword(ctx, id, user.ChangePasswordRequest{OldPassword: "oldpassword", NewPassword: "newpassword"}).
		Return(nil)

	assert.NoError(t, deps.svc.ChangePassword(ctx, "oldpassword", "newpassword"))
	assert.NoError(t, deps.svc.Logout(ctx))
	assert.NoError(t, deps.svc.Logout(context.Background()))

	err := deps.svc.ChangePassword(context.Background(), "a", "b")
	assert.ErrorIs(t, err, rbacerrors.ErrNotLoggedIn)
}
