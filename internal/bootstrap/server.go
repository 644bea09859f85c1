package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StartHTTPServer menjalankan server sampai SIGINT/SIGTERM, lalu graceful
// shutdown. onShutdown hooks run in order after in-flight requests drain.
func StartHTTPServer(handler http.Handler, cfg ServerConfig, onShutdown ...func() error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		zap.L().Fatal("listen failed", zap.String("port", cfg.Port), zap.Error(err))
	}

	if err := Serve(ctx, ln, handler, cfg, zap.L(), onShutdown...); err != nil {
		zap.L().Error("server stopped with error", zap.Error(err))
	}
}

// Serve blocks until ctx is done or the server fails. Hook errors are
// logged, not returned.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, cfg ServerConfig, logger *zap.Logger, onShutdown ...func() error) error {
	server := &http.Server{
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server running", zap.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		logger.Info("server exited gracefully")
		return nil
	})

	err := g.Wait()

	for _, fn := range onShutdown {
		if hookErr := fn(); hookErr != nil {
			logger.Warn("shutdown hook failed", zap.Error(hookErr))
		}
	}
	return err
}
