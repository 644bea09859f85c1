package auth

import (
	"errors"
	"fmt"
	"time"

	autherrors "go-hrgql/internal/auth/errors"
	"go-hrgql/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 24 * time.Hour

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

//go:generate mockgen -source=token.go -destination=mock/token_mock.go -package=mock
type TokenService interface {
	Issue(u user.User) (string, error)
	Verify(token string) (*Claims, error)
	// ExpiresIn is the human readable token lifetime, e.g. "24h".
	ExpiresIn() string
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*tokenService)

func WithTokenClock(now func() time.Time) TokenOption {
	return func(t *tokenService) { t.now = now }
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	t := &tokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *tokenService) Issue(u user.User) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: u.ID.String(),
		Email:  u.Email,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", autherrors.ErrTokenGenerationFailed
	}
	return signed, nil
}

func (t *tokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return t.secret, nil
	},
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	return claims, nil
}

func (t *tokenService) ExpiresIn() string {
	if t.ttl%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(t.ttl/time.Hour))
	}
	return t.ttl.String()
}
