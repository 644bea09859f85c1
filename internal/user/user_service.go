package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-hrgql/internal/shared/apperror"
	"go-hrgql/internal/shared/contextutil"
	usererrors "go-hrgql/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Authenticate(ctx context.Context, email, password string) (User, error)
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	cost   int
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*service)

// WithBcryptCost overrides bcrypt.DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *service) { s.cost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(db *sql.DB, repo Repository, opts ...Option) Service {
	s := &service{
		db:     db,
		repo:   repo,
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		logger: zap.L().Named("user.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Authenticate(ctx context.Context, email, password string) (User, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	email = normalizeEmail(email)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, usererrors.ErrUserNotFound) {
			l.Warn("login unknown email", zap.String("email", email))
			return User{}, usererrors.ErrInvalidCredentials
		}
		l.Error("login lookup failed", zap.Error(err))
		return User{}, mapped
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		l.Warn("login wrong password", zap.String("user_id", u.ID.String()))
		return User{}, usererrors.ErrInvalidCredentials
	}

	return *u, nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	req.Email = normalizeEmail(req.Email)
	if err := apperror.ValidateStruct(req); err != nil {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return User{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create user begin tx failed", zap.Error(err))
		return User{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(mapRepositoryError(err), usererrors.ErrUserNotFound) {
		l.Error("create user email check failed", zap.Error(err))
		return User{}, err
	}
	if existing != nil {
		l.Warn("create user email taken", zap.String("email", req.Email))
		return User{}, usererrors.ErrUserAlreadyExists
	}

	employeeID, err := qtx.FindEmployeeIDByEmail(ctx, req.Email)
	if err != nil {
		l.Error("create user employee link lookup failed", zap.Error(err))
		return User{}, err
	}

	now := s.now().UTC()
	u := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		EmployeeID:   employeeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := qtx.Create(ctx, u); err != nil {
		l.Error("create user persist failed", zap.Error(err))
		return User{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		l.Error("create user commit failed", zap.Error(err))
		return User{}, err
	}

	l.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
		zap.Bool("linked_employee", employeeID != nil),
	)
	return *u, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, mapRepositoryError(err)
	}
	return *u, nil
}

func (s *service) ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := apperror.ValidateStruct(req); err != nil {
		return err
	}
	if req.OldPassword == req.NewPassword {
		return usererrors.ErrSamePassword
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)); err != nil {
		l.Warn("change password wrong current password", zap.String("user_id", id.String()))
		return usererrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		l.Error("failed to hash new password", zap.Error(err))
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hashed), s.now().UTC()); err != nil {
		l.Error("change password persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	l.Info("password changed", zap.String("user_id", id.String()))
	return nil
}
