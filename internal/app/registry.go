package app

import (
	"database/sql"

	"go-hrgql/internal/auth"
	"go-hrgql/internal/config"
	"go-hrgql/internal/department"
	"go-hrgql/internal/employee"
	"go-hrgql/internal/gql"
	"go-hrgql/internal/messaging/kafka"
	"go-hrgql/internal/middleware"
	"go-hrgql/internal/rbac"
	"go-hrgql/internal/rbac/infra"
	"go-hrgql/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	userService := user.NewService(db, userRepo)
	authService := auth.NewService(userService, tokenService, rbacService, logger)
	departmentService := department.NewService(departmentRepo, rbacService, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, outboxRepo, rbacService, rdb, employee.WithLogger(logger))

	// --- GraphQL ---
	resolver := gql.NewResolver(
		employeeService,
		authService,
		departmentService,
		gql.WithProduction(cfg.IsProduction()),
		gql.WithLogger(logger),
	)
	schema, err := gql.NewSchema(resolver, cfg.GraphQLMaxDepth)
	if err != nil {
		return err
	}

	// --- Routes Registration ---
	gql.RegisterRoutes(
		router,
		gql.NewHandler(schema),
		middleware.RateLimitByIP(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst),
		middleware.Authenticate(tokenService),
		middleware.ContextLogger(logger.Named("http")),
		middleware.RateLimitByUser(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst),
	)

	return nil
}
