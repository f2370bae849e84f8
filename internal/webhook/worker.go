package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Worker polls webhook_queue and delivers pending jobs. Failed jobs are
// retried with exponential backoff until max_attempts, then marked
// failed for operators to inspect.
type Worker struct {
	db      Pool
	service *Service
	logger  *slog.Logger
	stopCh  chan struct{}
}

func NewWorker(db Pool, service *Service, logger *slog.Logger) *Worker {
	return &Worker{
		db:      db,
		service: service,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	w.logger.Info("webhook worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("webhook worker stopped")
			return
		case <-w.stopCh:
			w.logger.Info("webhook worker stopped")
			return
		case <-ticker.C:
			if err := w.processQueue(ctx); err != nil {
				w.logger.Error("failed to process webhook queue", "error", err)
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
}

func (w *Worker) processQueue(ctx context.Context) error {
	query := `
		SELECT id, event_type, payload, attempts, max_attempts
		FROM webhook_queue
		WHERE status = 'pending' AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		ORDER BY created_at ASC
		FOR UPDATE SKIP LOCKED
		LIMIT 10
	`

	rows, err := w.db.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("query webhook queue: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.ID, &job.EventType, &job.Payload, &job.Attempts, &job.MaxAttempts); err != nil {
			w.logger.Error("failed to scan webhook job", "error", err)
			continue
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate webhook queue: %w", err)
	}

	for i := range jobs {
		if err := w.processJob(ctx, &jobs[i]); err != nil {
			w.logger.Error("failed to process webhook job",
				"job_id", jobs[i].ID,
				"attempts", jobs[i].Attempts,
				"error", err,
			)
		}
	}

	return nil
}

func (w *Worker) processJob(ctx context.Context, job *Job) error {
	if !w.service.Enabled() {
		return w.markFailed(ctx, job.ID, "no webhook endpoint configured")
	}

	if err := w.service.Deliver(ctx, job); err != nil {
		return w.scheduleRetry(ctx, job, err.Error())
	}

	return w.markComplete(ctx, job.ID)
}

func (w *Worker) scheduleRetry(ctx context.Context, job *Job, errorMsg string) error {
	if job.Attempts+1 >= job.MaxAttempts {
		return w.markFailed(ctx, job.ID, errorMsg)
	}

	delay := time.Duration(1<<job.Attempts) * time.Second
	nextRetry := time.Now().Add(delay)

	query := `
		UPDATE webhook_queue
		SET attempts = attempts + 1,
		    next_retry_at = $1,
		    last_error = $2,
		    status = 'pending',
		    updated_at = NOW()
		WHERE id = $3
	`

	if _, err := w.db.Exec(ctx, query, nextRetry, errorMsg, job.ID); err != nil {
		return fmt.Errorf("schedule retry: %w", err)
	}

	w.logger.Info("webhook job scheduled for retry",
		"job_id", job.ID,
		"attempts", job.Attempts+1,
		"next_retry", nextRetry,
	)

	return nil
}

func (w *Worker) markComplete(ctx context.Context, jobID uuid.UUID) error {
	query := `
		UPDATE webhook_queue
		SET status = 'delivered',
		    updated_at = NOW()
		WHERE id = $1
	`

	if _, err := w.db.Exec(ctx, query, jobID); err != nil {
		return fmt.Errorf("mark complete: %w", err)
	}

	w.logger.Info("webhook job delivered", "job_id", jobID)
	return nil
}

func (w *Worker) markFailed(ctx context.Context, jobID uuid.UUID, errorMsg string) error {
	query := `
		UPDATE webhook_queue
		SET status = 'failed',
		    last_error = $1,
		    updated_at = NOW()
		WHERE id = $2
	`

	if _, err := w.db.Exec(ctx, query, errorMsg, jobID); err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}

	w.logger.Warn("webhook job failed", "job_id", jobID, "error", errorMsg)
	return nil
}
