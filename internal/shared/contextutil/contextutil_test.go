package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestAndUserID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "user-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetLogger_Fallbacks(t *testing.T) {
	fallback := zap.NewExample()
	scoped := zap.NewNop().Named("scoped")

	assert.Same(t, scoped, GetLogger(WithLogger(context.Background(), scoped), fallback))
	assert.Same(t, fallback, GetLogger(context.Background(), fallback))
	assert.NotNil(t, GetLogger(context.Background(), nil))
}

func TestScopeDoesNotLeakToParent(t *testing.T) {
	parent := WithRequestID(context.Background(), "req-1")
	child := WithUserID(parent, "user-1")

	assert.Equal(t, "req-1", GetRequestID(child))
	assert.Equal(t, "user-1", GetUserID(child))
	assert.Empty(t, GetUserID(parent))
}
