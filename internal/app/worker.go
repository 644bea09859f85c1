package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go-hrgql/internal/config"
	"go-hrgql/internal/messaging/kafka"
	"go-hrgql/internal/messaging/kafka/producer"
	"go-hrgql/internal/shared/connection"

	"go.uber.org/zap"
)

var ErrMissingKafkaBroker = errors.New("KAFKA_BROKER is required")

// RunWorker publishes pending outbox rows to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return ErrMissingKafkaBroker
	}

	gormDB, err := connection.ConnectGORMWithRetry(postgresConfig(cfg), cfg.DB.MaxRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.DB.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.Kafka.PollInterval)
	}()

	<-ctx.Done()
	logger.Info("worker shutting down")
	<-done

	return nil
}
