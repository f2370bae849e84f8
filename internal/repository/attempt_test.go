package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
)

func TestAttemptRepository_Create(t *testing.T) {
	now := time.Now()
	sessionID := uuid.New()

	tests := []struct {
		name      string
		attempt   *domain.Attempt
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   bool
	}{
		{
			name: "successful insert",
			attempt: &domain.Attempt{
				SessionID:        sessionID,
				ClientRef:        "kiosk-7",
				Completed:        true,
				ChallengesPassed: 5,
				FramesSeen:       42,
				DurationMs:       8600,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO liveness_attempts`).
					WithArgs(pgxmock.AnyArg(), sessionID, "kiosk-7", true, 5, 42, int64(8600)).
					WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))
			},
			wantErr: false,
		},
		{
			name: "database error",
			attempt: &domain.Attempt{
				SessionID: sessionID,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO liveness_attempts`).
					WithArgs(pgxmock.AnyArg(), sessionID, "", false, 0, 0, int64(0)).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewAttemptRepository(mock)
			err = repo.Create(context.Background(), tt.attempt)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, tt.attempt.ID)
				assert.Equal(t, now, tt.attempt.CreatedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttemptRepository_ListRecent(t *testing.T) {
	now := time.Now()
	attemptID := uuid.New()
	sessionID := uuid.New()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"id", "session_id", "client_ref", "completed", "challenges_passed", "frames_seen", "duration_ms", "created_at",
	}).AddRow(attemptID, sessionID, "kiosk-7", true, 5, 42, int64(8600), now)

	mock.ExpectQuery(`SELECT id, session_id, client_ref, completed, challenges_passed, frames_seen, duration_ms, created_at FROM liveness_attempts`).
		WithArgs(10).
		WillReturnRows(rows)

	repo := NewAttemptRepository(mock)
	attempts, err := repo.ListRecent(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, attemptID, attempts[0].ID)
	assert.Equal(t, sessionID, attempts[0].SessionID)
	assert.True(t, attempts[0].Completed)
	assert.Equal(t, 5, attempts[0].ChallengesPassed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
