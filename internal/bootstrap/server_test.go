package bootstrap

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServe_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	ctx, cancel := context.WithCancel(context.Background())
	var hooks []string
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, handler, ServerConfig{ReadTimeout: time.Second}, zap.NewNop(),
			func() error { hooks = append(hooks, "db"); return nil },
			func() error { hooks = append(hooks, "redis"); return errors.New("already closed") },
		)
	}()

	resp, err := http.Get("http://" + ln.Addr().String())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{"db", "redis"}, hooks)
}

func TestServe_ClosedListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ln.Close()

	hookRan := false
	err = Serve(context.Background(), ln, http.NotFoundHandler(), ServerConfig{}, zap.NewNop(),
		func() error { hookRan = true; return nil },
	)

	assert.ErrorContains(t, err, "serve:")
	assert.True(t, hookRan)
}
