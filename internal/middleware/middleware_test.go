package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrgql/internal/auth"
	autherrors "go-hrgql/internal/auth/errors"
	authMock "go-hrgql/internal/auth/mock"
	"go-hrgql/internal/middleware"
	"go-hrgql/internal/rbac"
	rbacerrors "go-hrgql/internal/rbac/errors"
	"go-hrgql/internal/rbac/infra"
	"go-hrgql/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func runAuth(t *testing.T, tokens auth.TokenService, header string) (context.Context, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var captured context.Context
	r := gin.New()
	var gc *gin.Context
	r.GET("/", middleware.Authenticate(tokens), func(c *gin.Context) {
		captured = c.Request.Context()
		gc = c.Copy()
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	return captured, gc
}

func newGate(t *testing.T) rbac.Service {
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	return rbac.NewService(enforcer)
}

func TestAuthenticate(t *testing.T) {
	t.Run("no header is anonymous", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := authMock.NewMockTokenService(ctrl)

		ctx, _ := runAuth(t, tokens, "")

		_, ok := rbac.CallerFromContext(ctx)
		assert.False(t, ok)
		_, err := newGate(t).RequireAuth(ctx)
		assert.ErrorIs(t, err, rbacerrors.ErrNotLoggedIn)
	})

	t.Run("valid token attaches caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := authMock.NewMockTokenService(ctrl)
		userID := uuid.New()

		tokens.EXPECT().Verify("good-token").Return(&auth.Claims{
			UserID: userID.String(),
			Email:  "hr@company.com",
			Role:   rbac.RoleHR,
		}, nil)

		ctx, gc := runAuth(t, tokens, "Bearer good-token")

		caller, ok := rbac.CallerFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, rbac.Caller{UserID: userID, Email: "hr@company.com", Role: rbac.RoleHR}, caller)
		assert.Equal(t, userID.String(), contextutil.GetUserID(ctx))
		assert.Equal(t, rbac.RoleHR, gc.GetString("role"))
	})

	t.Run("expired token surfaces only when auth is required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := authMock.NewMockTokenService(ctrl)
		tokens.EXPECT().Verify("old-token").Return(nil, autherrors.ErrTokenExpired)

		ctx, _ := runAuth(t, tokens, "Bearer old-token")

		_, ok := rbac.CallerFromContext(ctx)
		assert.False(t, ok)
		_, err := newGate(t).RequireAuth(ctx)
		assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
	})

	t.Run("claims with malformed user id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := authMock.NewMockTokenService(ctrl)
		tokens.EXPECT().Verify("odd-token").Return(&auth.Claims{UserID: "nope", Role: rbac.RoleAdmin}, nil)

		ctx, _ := runAuth(t, tokens, "Bearer odd-token")

		_, err := newGate(t).RequireAuth(ctx)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("non-bearer scheme is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tokens := authMock.NewMockTokenService(ctrl)

		ctx, _ := runAuth(t, tokens, "Basic dXNlcjpwYXNz")

		_, ok := rbac.CallerFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)

	var rid string
	r := gin.New()
	r.GET("/", middleware.ContextLogger(zap.New(core)), func(c *gin.Context) {
		rid = contextutil.GetRequestID(c.Request.Context())
		contextutil.GetLogger(c.Request.Context(), nil).Info("handled")
		c.Status(http.StatusOK)
	})

	t.Run("keeps incoming request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-abc")
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-abc", rid)
		assert.Equal(t, "req-abc", w.Header().Get("X-Request-ID"))

		entries := logs.TakeAll()
		assert.Len(t, entries, 2)
		assert.Equal(t, "handled", entries[0].Message)
		assert.Equal(t, "req-abc", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "request completed", entries[1].Message)
		assert.Equal(t, int64(http.StatusOK), entries[1].ContextMap()["status"])
	})

	t.Run("replaces malformed request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "bad id\twith spaces")
		r.ServeHTTP(w, req)
		logs.TakeAll()

		_, err := uuid.Parse(rid)
		assert.NoError(t, err)
	})

	t.Run("generates request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(rid)
		assert.NoError(t, err)
		assert.Equal(t, rid, w.Header().Get("X-Request-ID"))
		logs.TakeAll()
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		r2 := gin.New()
		r2.GET("/missing", middleware.ContextLogger(zap.New(core)), func(c *gin.Context) {
			c.Status(http.StatusNotFound)
		})
		r2.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

		entries := logs.TakeAll()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, zap.WarnLevel, entries[0].Level)
			assert.Equal(t, "/missing", entries[0].ContextMap()["path"])
		}
	})
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/graphql", middleware.RateLimitByIP(1, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.RemoteAddr = "10.2.2.2:5000"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitByUser_SkipsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", middleware.RateLimitByUser(1, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
