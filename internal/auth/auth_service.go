package auth

import (
	"context"
	"strings"

	autherrors "go-hrgql/internal/auth/errors"
	"go-hrgql/internal/rbac"
	"go-hrgql/internal/shared/apperror"
	"go-hrgql/internal/shared/contextutil"
	"go-hrgql/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (AuthPayload, error)
	Register(ctx context.Context, req RegisterRequest) (AuthPayload, error)
	Me(ctx context.Context) (UserResponse, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	Logout(ctx context.Context) error
}

type service struct {
	users  user.Service
	tokens TokenService
	gate   rbac.Service
	logger *zap.Logger
}

func NewService(users user.Service, tokens TokenService, gate rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		users:  users,
		tokens: tokens,
		gate:   gate,
		logger: l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (AuthPayload, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	req.Email = strings.TrimSpace(req.Email)
	if err := apperror.ValidateStruct(req); err != nil {
		return AuthPayload{}, err
	}

	u, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return AuthPayload{}, err
	}

	payload, err := s.issue(u)
	if err != nil {
		l.Error("login token issue failed", zap.Error(err))
		return AuthPayload{}, err
	}

	l.Info("login success", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return payload, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthPayload, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = rbac.RoleEmployee
	}
	if !rbac.IsValidRole(role) {
		return AuthPayload{}, autherrors.ErrInvalidRole
	}

	// Anonymous self-registration is limited to the employee role; any
	// authenticated caller must hold user:register.
	if _, ok := rbac.CallerFromContext(ctx); ok {
		if _, err := s.gate.Authorize(ctx, rbac.ResourceUser, rbac.ActionRegister); err != nil {
			return AuthPayload{}, err
		}
	} else if role != rbac.RoleEmployee {
		l.Warn("anonymous register with elevated role", zap.String("role", role))
		return AuthPayload{}, autherrors.ErrRegistrationForbidden
	}

	u, err := s.users.Create(ctx, user.CreateUserRequest{
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return AuthPayload{}, err
	}

	payload, err := s.issue(u)
	if err != nil {
		l.Error("register token issue failed", zap.Error(err))
		return AuthPayload{}, err
	}

	return payload, nil
}

func (s *service) Me(ctx context.Context) (UserResponse, error) {
	caller, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return UserResponse{}, err
	}

	u, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return UserResponse{}, err
	}

	return mapUserResponse(u), nil
}

func (s *service) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	caller, err := s.gate.RequireAuth(ctx)
	if err != nil {
		return err
	}

	return s.users.ChangePassword(ctx, caller.UserID, user.ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
}

// Logout is a no-op on the server: tokens are stateless and expire on their
// own. Clients drop their copy of the token.
func (s *service) Logout(ctx context.Context) error {
	if caller, ok := rbac.CallerFromContext(ctx); ok {
		contextutil.GetLogger(ctx, s.logger).Info("logout", zap.String("user_id", caller.UserID.String()))
	}
	return nil
}

func (s *service) issue(u user.User) (AuthPayload, error) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return AuthPayload{}, err
	}
	return AuthPayload{
		Token:     token,
		ExpiresIn: s.tokens.ExpiresIn(),
		User:      mapUserResponse(u),
	}, nil
}

// CallerFromClaims converts verified token claims into the request principal.
func CallerFromClaims(c *Claims) (rbac.Caller, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return rbac.Caller{}, autherrors.ErrInvalidToken
	}
	return rbac.Caller{UserID: id, Email: c.Email, Role: c.Role}, nil
}
