package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

type AttemptRepository struct {
	pool PgxPool
}

func NewAttemptRepository(pool PgxPool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Create writes one finished attempt. Attempts are audit rows: they are
// written after the fact and never updated.
func (r *AttemptRepository) Create(ctx context.Context, attempt *domain.Attempt) error {
	query := `
		INSERT INTO liveness_attempts (id, session_id, client_ref, completed, challenges_passed, frames_seen, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		attempt.ID,
		attempt.SessionID,
		attempt.ClientRef,
		attempt.Completed,
		attempt.ChallengesPassed,
		attempt.FramesSeen,
		attempt.DurationMs,
	).Scan(&attempt.CreatedAt)

	if err != nil {
		return fmt.Errorf("create attempt: %w", err)
	}

	return nil
}

// ListRecent returns the most recent attempts, newest first.
func (r *AttemptRepository) ListRecent(ctx context.Context, limit int) ([]domain.Attempt, error) {
	query := `
		SELECT id, session_id, client_ref, completed, challenges_passed, frames_seen, duration_ms, created_at
		FROM liveness_attempts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.Attempt
	for rows.Next() {
		var a domain.Attempt
		if err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.ClientRef,
			&a.Completed,
			&a.ChallengesPassed,
			&a.FramesSeen,
			&a.DurationMs,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}

	return attempts, nil
}
