package rbac

import (
	"context"
	"slices"

	rbacerrors "go-hrgql/internal/rbac/errors"
	"go-hrgql/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	RequireAuth(ctx context.Context) (Caller, error)
	RequireRole(ctx context.Context, roles ...string) (Caller, error)
	Authorize(ctx context.Context, resource, action string) (Caller, error)
	Can(role, resource, action string) bool
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	return &service{
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) RequireAuth(ctx context.Context) (Caller, error) {
	if caller, ok := CallerFromContext(ctx); ok {
		return caller, nil
	}

	if err := authErrorFromContext(ctx); err != nil {
		if appErr, ok := apperror.As(err); ok {
			return Caller{}, appErr
		}
	}

	return Caller{}, rbacerrors.ErrNotLoggedIn
}

func (s *service) RequireRole(ctx context.Context, roles ...string) (Caller, error) {
	caller, err := s.RequireAuth(ctx)
	if err != nil {
		return Caller{}, err
	}

	if !slices.Contains(roles, caller.Role) {
		s.logger.Debug("role check denied",
			zap.String("role", caller.Role),
			zap.Strings("required", roles),
		)
		return Caller{}, rbacerrors.ErrForbidden
	}

	return caller, nil
}

func (s *service) Authorize(ctx context.Context, resource, action string) (Caller, error) {
	caller, err := s.RequireAuth(ctx)
	if err != nil {
		return Caller{}, err
	}

	allowed, err := s.enforcer.Enforce(caller.Role, resource, action)
	if err != nil {
		s.logger.Error("casbin enforce failed",
			zap.String("role", caller.Role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return Caller{}, rbacerrors.ErrPolicyEvaluation
	}

	if !allowed {
		s.logger.Debug("policy denied",
			zap.String("user_id", caller.UserID.String()),
			zap.String("role", caller.Role),
			zap.String("resource", resource),
			zap.String("action", action),
		)
		return Caller{}, rbacerrors.ErrForbidden
	}

	return caller, nil
}

// Can evaluates the policy without touching the request context.
func (s *service) Can(role, resource, action string) bool {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("casbin enforce failed", zap.Error(err))
		return false
	}
	return allowed
}
