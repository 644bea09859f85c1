package producer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hrgql/internal/messaging/kafka"
	kafkaMock "go-hrgql/internal/messaging/kafka/mock"

	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failFor map[string]error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err, ok := f.failFor[string(m.Key)]; ok {
			return err
		}
		f.written = append(f.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]error{"emp-2": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, batchSize).Return([]kafka.OutboxEvent{
			{ID: "1", RequestID: "rid-1", AggregateType: "employee", AggregateID: "emp-1", EventType: "employee.created", Topic: "t", Payload: []byte(`{}`)},
			{ID: "2", AggregateType: "employee", AggregateID: "emp-2", EventType: "employee.deleted", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "1").Return(nil)
		repo.EXPECT().MarkFailed(ctx, "2", "broker down").Return(nil)

		sent, err := processPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.written, 1)

		msg := writer.written[0]
		assert.Equal(t, "emp-1", string(msg.Key))
		assert.Equal(t, "t", msg.Topic)
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("rid-1")})
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "event_type", Value: []byte("employee.created")})
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, nil)

		sent, err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, batchSize).Return(nil, errors.New("db down"))

		_, err := processPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.EqualError(t, err, "db down")
	})
}

func TestHousekeep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("purges and sets backlog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().PurgeSent(ctx, now.Add(-sentRetention)).Return(int64(4), nil)
		repo.EXPECT().CountPending(ctx).Return(9, nil)

		housekeep(ctx, repo, zap.NewNop(), now)
		assert.Equal(t, float64(9), testutil.ToFloat64(metricsOutboxBacklog))
	})

	t.Run("purge error still refreshes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().PurgeSent(ctx, gomock.Any()).Return(int64(0), errors.New("locked"))
		repo.EXPECT().CountPending(ctx).Return(2, nil)

		housekeep(ctx, repo, zap.NewNop(), now)
		assert.Equal(t, float64(2), testutil.ToFloat64(metricsOutboxBacklog))
	})

	t.Run("count error keeps last value", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		metricsOutboxBacklog.Set(5)
		repo.EXPECT().CountPending(ctx).Return(0, errors.New("db down"))

		refreshBacklog(ctx, repo, zap.NewNop())
		assert.Equal(t, float64(5), testutil.ToFloat64(metricsOutboxBacklog))
	})
}
