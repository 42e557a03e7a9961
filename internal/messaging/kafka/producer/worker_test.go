package producer

import (
	"context"
	"errors"
	"testing"

	"go-hrm/internal/messaging/kafka"
	outboxmock "go-hrm/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingWriter struct{ err error }

func (w *failingWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	return w.err
}

func pendingEvent(id string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		AggregateType: "employee",
		AggregateID:   "aa0e8400-e29b-41d4-a716-446655440000",
		EventType:     "employee.created",
		Topic:         "hr.employee.lifecycle.v1",
		Payload:       []byte(`{"employee_id":"aa0e8400"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestProcessPendingEvents_PublishFailureMarksFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := outboxmock.NewMockOutboxRepository(ctrl)

	repo.EXPECT().ListPending(gomock.Any(), 50).Return([]kafka.OutboxEvent{pendingEvent("ev-1")}, nil)
	repo.EXPECT().MarkFailed(gomock.Any(), "ev-1", "broker down").Return(nil)

	core, _ := observer.New(zap.ErrorLevel)
	writer := &failingWriter{err: errors.New("broker down")}

	err := processPendingEvents(context.Background(), repo, writer, zap.New(core))
	require.NoError(t, err)
}

func TestProcessPendingEvents_MarkFailedErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := outboxmock.NewMockOutboxRepository(ctrl)

	repo.EXPECT().ListPending(gomock.Any(), 50).Return([]kafka.OutboxEvent{pendingEvent("ev-1")}, nil)
	repo.EXPECT().MarkFailed(gomock.Any(), "ev-1", "broker down").Return(errors.New("db down"))

	core, logs := observer.New(zap.ErrorLevel)
	writer := &failingWriter{err: errors.New("broker down")}

	err := processPendingEvents(context.Background(), repo, writer, zap.New(core))
	require.NoError(t, err)

	// A row stuck in pending after a failed publish has to be observable.
	assert.Equal(t, 1, logs.FilterMessage("mark outbox failed").Len())
}
