package app

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go-hrgql/internal/config"
	"go-hrgql/internal/middleware"
	"go-hrgql/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp opens the database pool (and redis when configured), registers
// every route on router and returns the cleanup to run on shutdown.
func BuildApp(router *gin.Engine, cfg *config.Config) (func() error, error) {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(postgresConfig(cfg), cfg.DB.MaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("db", cfg.DB.Name))

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.DB.MaxRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established", zap.String("addr", cfg.Redis.Addr))
	} else {
		logger.Warn("REDIS_ADDR not set, catalog cache disabled")
	}

	cleanup := func() error {
		var errs []error
		if rdb != nil {
			errs = append(errs, rdb.Close())
		}
		errs = append(errs, sqlDB.Close())
		return errors.Join(errs...)
	}

	router.Use(globalMiddleware(cfg)...)
	registerOps(router, sqlDB)

	// 2. Register Modules & Routes
	if err := registerModules(router, cfg, sqlDB, gormDB, rdb); err != nil {
		_ = cleanup()
		return nil, err
	}

	return cleanup, nil
}

func postgresConfig(cfg *config.Config) connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
}

func globalMiddleware(cfg *config.Config) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.HTTP.FrontendURL},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.Metrics(),
	}
}

// registerOps mounts the unauthenticated operational endpoints.
func registerOps(router gin.IRouter, db *sql.DB) {
	started := time.Now()

	router.GET("/health", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"uptime": time.Since(started).Round(time.Second).String(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
