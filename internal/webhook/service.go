package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

// Pool is the subset of pgxpool.Pool the webhook queue uses. pgxmock
// implements it too.
type Pool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

// EventCompleted is the only event delivered over the completion
// callback. Per-frame events go over the websocket stream instead.
const EventCompleted = "session.completed"

const defaultMaxAttempts = 5

// Service delivers signed callbacks to the single configured endpoint.
// Deliveries are queue-first: NotifyCompletion only inserts a row and
// the Worker does the HTTP call, so a slow endpoint never blocks the
// frame path.
type Service struct {
	db     Pool
	client *http.Client
	url    string
	secret string
}

func NewService(db Pool, url, secret string) *Service {
	return &Service{
		db:     db,
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
		secret: secret,
	}
}

// Enabled reports whether an endpoint is configured.
func (s *Service) Enabled() bool {
	return s.url != ""
}

// NotifyCompletion queues a session.completed callback for the attempt.
func (s *Service) NotifyCompletion(ctx context.Context, attempt *domain.Attempt) error {
	if !s.Enabled() {
		return nil
	}

	event := EventPayload{
		Type:      EventCompleted,
		SessionID: attempt.SessionID,
		Data:      attempt,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	query := `
		INSERT INTO webhook_queue (event_type, payload, max_attempts)
		VALUES ($1, $2, $3)
	`

	if _, err := s.db.Exec(ctx, query, event.Type, payload, defaultMaxAttempts); err != nil {
		return fmt.Errorf("enqueue webhook: %w", err)
	}

	return nil
}

// Deliver posts one job's payload to the endpoint with the HMAC
// signature header. A non-2xx response is an error.
func (s *Service) Deliver(ctx context.Context, job *Job) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(job.Payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Liva-Signature", Sign(s.secret, job.Payload))
	req.Header.Set("X-Liva-Event", job.EventType)
	req.Header.Set("User-Agent", "Liva-Webhook/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("deliver webhook: HTTP %d", resp.StatusCode)
	}

	return nil
}
