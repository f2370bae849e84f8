package webhook

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func queueRows(job Job) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "event_type", "payload", "attempts", "max_attempts"}).
		AddRow(job.ID, job.EventType, job.Payload, job.Attempts, job.MaxAttempts)
}

func TestWorker_ProcessQueue_Delivers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	job := Job{
		ID:          uuid.New(),
		EventType:   EventCompleted,
		Payload:     []byte(`{"type":"session.completed"}`),
		Attempts:    0,
		MaxAttempts: defaultMaxAttempts,
	}

	mock.ExpectQuery(`SELECT id, event_type, payload, attempts, max_attempts`).
		WillReturnRows(queueRows(job))
	mock.ExpectExec(`UPDATE webhook_queue`).
		WithArgs(job.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService(mock, server.URL, "secret")
	worker := NewWorker(mock, svc, testLogger())

	err = worker.processQueue(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorker_ProcessQueue_SchedulesRetry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	job := Job{
		ID:          uuid.New(),
		EventType:   EventCompleted,
		Payload:     []byte(`{}`),
		Attempts:    1,
		MaxAttempts: defaultMaxAttempts,
	}

	mock.ExpectQuery(`SELECT id, event_type, payload, attempts, max_attempts`).
		WillReturnRows(queueRows(job))
	mock.ExpectExec(`UPDATE webhook_queue`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), job.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService(mock, server.URL, "secret")
	worker := NewWorker(mock, svc, testLogger())

	err = worker.processQueue(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorker_ProcessQueue_MarksFailedAfterMaxAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	job := Job{
		ID:          uuid.New(),
		EventType:   EventCompleted,
		Payload:     []byte(`{}`),
		Attempts:    defaultMaxAttempts - 1,
		MaxAttempts: defaultMaxAttempts,
	}

	mock.ExpectQuery(`SELECT id, event_type, payload, attempts, max_attempts`).
		WillReturnRows(queueRows(job))
	mock.ExpectExec(`UPDATE webhook_queue`).
		WithArgs(pgxmock.AnyArg(), job.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService(mock, server.URL, "secret")
	worker := NewWorker(mock, svc, testLogger())

	err = worker.processQueue(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
