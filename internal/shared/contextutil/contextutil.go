// Package contextutil carries request metadata from the HTTP edge down to
// services and repositories without them importing gin.
package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type scopeKey struct{}

// scope is stored by value; every With* call copies it so a derived context
// never mutates its parent.
type scope struct {
	requestID string
	userID    string
	logger    *zap.Logger
}

func scopeFrom(ctx context.Context) scope {
	if ctx == nil {
		return scope{}
	}
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func withScope(ctx context.Context, update func(*scope)) context.Context {
	s := scopeFrom(ctx)
	update(&s)
	return context.WithValue(ctx, scopeKey{}, s)
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return withScope(ctx, func(s *scope) { s.requestID = rid })
}

func GetRequestID(ctx context.Context) string {
	return scopeFrom(ctx).requestID
}

func WithUserID(ctx context.Context, uid string) context.Context {
	return withScope(ctx, func(s *scope) { s.userID = uid })
}

func GetUserID(ctx context.Context) string {
	return scopeFrom(ctx).userID
}

// WithLogger stores the request-scoped logger, normally already tagged with
// request_id by the HTTP middleware.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return withScope(ctx, func(s *scope) { s.logger = logger })
}

// GetLogger returns the request logger, then defaultLogger, then a no-op
// logger. It never returns nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if l := scopeFrom(ctx).logger; l != nil {
		return l
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return zap.NewNop()
}
