package main

import (
	"context"
	"log"
	"os"

	"go-hrgql/internal/bootstrap"
	"go-hrgql/internal/config"
	"go-hrgql/internal/employee"
	"go-hrgql/internal/migrations"
	"go-hrgql/internal/shared/connection"
	"go-hrgql/internal/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := newRootCmd(cfg, logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply database migrations and seed data",
		SilenceUsage: true,
	}

	pg := connection.PostgresConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}

	for _, action := range []string{migrations.ActionUp, migrations.ActionDown, migrations.ActionDrop, migrations.ActionVersion} {
		root.AddCommand(&cobra.Command{
			Use:   action,
			Short: "Run migrate " + action,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := migrations.Run(action, pg.URL(), logger); err != nil {
					return err
				}
				logger.Info("migration completed", zap.String("action", action))
				return nil
			},
		})
	}

	var (
		fake   int
		sample bool
	)
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and optional demo employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, err := connection.ConnectGORMWithRetry(pg, cfg.DB.MaxRetries)
			if err != nil {
				return err
			}
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			ctx := context.Background()
			seeder := migrations.NewSeeder(employee.NewRepository(gormDB), user.NewRepository(gormDB), logger)

			if _, err := seeder.SeedAdmin(ctx); err != nil {
				return err
			}
			if sample {
				if _, err := seeder.SeedSampleEmployees(ctx); err != nil {
					return err
				}
			}
			if fake > 0 {
				if _, err := seeder.SeedFakeEmployees(ctx, fake); err != nil {
					return err
				}
			}
			return nil
		},
	}
	seed.Flags().IntVar(&fake, "fake", 0, "number of generated employees to insert")
	seed.Flags().BoolVar(&sample, "sample", true, "insert the fixed demo roster")
	root.AddCommand(seed)

	return root
}
