package producer

import (
	"context"
	"time"

	"go-hrgql/internal/messaging/kafka"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	batchSize = 50

	// sentRetention is how long delivered rows stay around for replay checks.
	sentRetention = 7 * 24 * time.Hour
	purgeInterval = time.Hour
)

var metricsOutboxEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hrgql",
	Subsystem: "outbox",
	Name:      "events_total",
	Help:      "Outbox events processed by the publisher, by result.",
}, []string{"event_type", "result"})

var metricsOutboxBacklog = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "hrgql",
	Subsystem: "outbox",
	Name:      "pending",
	Help:      "Outbox events waiting to be published.",
})

func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	var lastPurge time.Time

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := processPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
			if now := time.Now(); now.Sub(lastPurge) >= purgeInterval {
				housekeep(ctx, repo, log, now)
				lastPurge = now
			} else {
				refreshBacklog(ctx, repo, log)
			}
		}
	}
}

// processPendingEvents publishes one batch and returns how many events were
// marked sent.
func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}

	if len(events) == 0 {
		return 0, nil
	}

	logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			metricsOutboxEvents.WithLabelValues(event.EventType, "failed").Inc()
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		sent++
		metricsOutboxEvents.WithLabelValues(event.EventType, "sent").Inc()
		logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return sent, nil
}

func refreshBacklog(ctx context.Context, repo kafka.OutboxRepository, logger *zap.Logger) {
	n, err := repo.CountPending(ctx)
	if err != nil {
		logger.Warn("count pending outbox events failed", zap.Error(err))
		return
	}
	metricsOutboxBacklog.Set(float64(n))
}

// housekeep drops delivered rows older than sentRetention and refreshes the
// backlog gauge.
func housekeep(ctx context.Context, repo kafka.OutboxRepository, logger *zap.Logger, now time.Time) {
	purged, err := repo.PurgeSent(ctx, now.Add(-sentRetention))
	if err != nil {
		logger.Warn("purge sent outbox events failed", zap.Error(err))
	} else if purged > 0 {
		logger.Info("purged sent outbox events", zap.Int64("count", purged))
	}
	refreshBacklog(ctx, repo, logger)
}
