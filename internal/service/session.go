package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
	"github.com/saturnino-fabrica-de-software/liva/internal/liveness"
	"github.com/saturnino-fabrica-de-software/liva/internal/provider"
	"github.com/saturnino-fabrica-de-software/liva/internal/repository"
)

// Event names published to streaming clients.
const (
	EventDetected  = "session.detected"
	EventReset     = "session.reset"
	EventTooBig    = "session.too_big"
	EventAdvanced  = "challenge.advanced"
	EventCompleted = "session.completed"
)

// EventPublisher fans a session event out to streaming clients.
type EventPublisher interface {
	Publish(sessionID uuid.UUID, eventType string, data interface{})
}

// CompletionNotifier queues an external callback for a finished attempt.
type CompletionNotifier interface {
	NotifyCompletion(ctx context.Context, attempt *domain.Attempt) error
}

// FrameResult is the outcome of evaluating one frame.
type FrameResult struct {
	SessionID   uuid.UUID             `json:"session_id"`
	State       domain.DetectionState `json:"state"`
	Instruction string                `json:"instruction,omitempty"`
	Advanced    bool                  `json:"advanced"`
	Completed   bool                  `json:"completed"`
}

// LivenessService runs liveness sessions: it owns the in-memory store,
// feeds frames from the oracle into each session's detection core and
// fans results out to the audit repository, the event stream and the
// completion webhook.
type LivenessService struct {
	oracle   provider.FrameOracle
	attempts repository.AttemptRepositoryInterface
	events   EventPublisher
	notifier CompletionNotifier
	store    *SessionStore
	cfg      liveness.Config
	ttl      time.Duration
	logger   *slog.Logger
}

func NewLivenessService(
	oracle provider.FrameOracle,
	attempts repository.AttemptRepositoryInterface,
	events EventPublisher,
	notifier CompletionNotifier,
	cfg liveness.Config,
	ttl time.Duration,
	logger *slog.Logger,
) *LivenessService {
	return &LivenessService{
		oracle:   oracle,
		attempts: attempts,
		events:   events,
		notifier: notifier,
		store:    NewSessionStore(),
		cfg:      cfg,
		ttl:      ttl,
		logger:   logger,
	}
}

// CreateSession starts a new liveness attempt and returns its record
// along with the challenge sequence the client will be walked through.
func (s *LivenessService) CreateSession(ctx context.Context, clientRef string) (*domain.Session, []domain.Challenge, error) {
	record := &domain.Session{
		ID:        uuid.New(),
		ClientRef: clientRef,
		ExpiresAt: time.Now().Add(s.ttl),
		CreatedAt: time.Now(),
	}

	s.store.Put(&sessionEntry{
		record:    record,
		core:      liveness.NewSession(s.cfg),
		startedAt: record.CreatedAt,
	})

	s.logger.Info("liveness session created",
		slog.String("session_id", record.ID.String()),
		slog.String("client_ref", clientRef),
	)

	return record, s.cfg.Challenges, nil
}

// SubmitFrame measures one camera frame and advances the session. The
// entry lock serializes frames so the nod window keeps arrival order.
func (s *LivenessService) SubmitFrame(ctx context.Context, id uuid.UUID, image []byte) (*FrameResult, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	faces, err := s.oracle.MeasureFaces(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("session %s: measure faces: %w", id, err)
	}

	var m *domain.FaceMeasurement
	if len(faces) == 1 {
		m = &faces[0]
	}

	entry.mu.Lock()
	prev := entry.core.State()
	state := entry.core.EvaluateFrame(m, len(faces))
	instruction, _ := entry.core.Instruction()
	frames := entry.core.Frames()
	justCompleted := state.Complete && !entry.recorded
	if justCompleted {
		entry.recorded = true
	}
	entry.mu.Unlock()

	result := &FrameResult{
		SessionID:   id,
		State:       state,
		Instruction: instruction,
		Advanced:    state.ChallengeIndex > prev.ChallengeIndex,
		Completed:   state.Complete,
	}

	s.publishTransitions(id, prev, state, result)

	if justCompleted {
		s.finishAttempt(ctx, entry, state, frames)
	}

	return result, nil
}

// GetSession returns the session record with its current state.
func (s *LivenessService) GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, *FrameResult, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, nil, err
	}

	entry.mu.Lock()
	state := entry.core.State()
	instruction, _ := entry.core.Instruction()
	entry.mu.Unlock()

	return entry.record, &FrameResult{
		SessionID:   id,
		State:       state,
		Instruction: instruction,
		Completed:   state.Complete,
	}, nil
}

// DeleteSession abandons a session. An unfinished attempt is still
// recorded for the audit trail.
func (s *LivenessService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	entry, ok := s.store.Get(id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.store.Delete(id)

	entry.mu.Lock()
	state := entry.core.State()
	frames := entry.core.Frames()
	recorded := entry.recorded
	entry.recorded = true
	entry.mu.Unlock()

	if !recorded {
		s.recordAttempt(ctx, entry, state, frames)
	}
	return nil
}

// ReapExpired drops expired sessions and records their attempts.
// Returns how many sessions were reaped.
func (s *LivenessService) ReapExpired(ctx context.Context) int {
	expired := s.store.TakeExpired(time.Now())
	for _, entry := range expired {
		entry.mu.Lock()
		state := entry.core.State()
		frames := entry.core.Frames()
		recorded := entry.recorded
		entry.recorded = true
		entry.mu.Unlock()

		if !recorded {
			s.recordAttempt(ctx, entry, state, frames)
		}
	}
	return len(expired)
}

// ListAttempts returns the most recent recorded attempts for auditing.
func (s *LivenessService) ListAttempts(ctx context.Context, limit int) ([]domain.Attempt, error) {
	return s.attempts.ListRecent(ctx, limit)
}

func (s *LivenessService) lookup(id uuid.UUID) (*sessionEntry, error) {
	entry, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if entry.record.IsExpired() {
		return nil, domain.ErrSessionExpired
	}
	return entry, nil
}

// publishTransitions emits stream events for the state edges this frame
// crossed. Best-effort: a full client buffer drops events, never frames.
func (s *LivenessService) publishTransitions(id uuid.UUID, prev, state domain.DetectionState, result *FrameResult) {
	if s.events == nil {
		return
	}

	switch {
	case state.FaceTooBig && !prev.FaceTooBig:
		s.events.Publish(id, EventTooBig, result)
	case state.FaceDetected && !prev.FaceDetected:
		s.events.Publish(id, EventDetected, result)
	case !state.FaceDetected && prev.FaceDetected:
		s.events.Publish(id, EventReset, result)
	}

	if result.Advanced {
		s.events.Publish(id, EventAdvanced, result)
	}
	if state.Complete && !prev.Complete {
		s.events.Publish(id, EventCompleted, result)
	}
}

// finishAttempt records the completed attempt and queues the webhook.
func (s *LivenessService) finishAttempt(ctx context.Context, entry *sessionEntry, state domain.DetectionState, frames int) {
	attempt := s.recordAttempt(ctx, entry, state, frames)

	if s.notifier != nil {
		if err := s.notifier.NotifyCompletion(ctx, attempt); err != nil {
			s.logger.Warn("failed to queue completion webhook",
				slog.String("session_id", entry.record.ID.String()),
				slog.Any("error", err),
			)
		}
	}
}

// recordAttempt writes the audit row. Errors are logged, not returned:
// the session outcome was already determined.
func (s *LivenessService) recordAttempt(ctx context.Context, entry *sessionEntry, state domain.DetectionState, frames int) *domain.Attempt {
	attempt := &domain.Attempt{
		SessionID:        entry.record.ID,
		ClientRef:        entry.record.ClientRef,
		Completed:        state.Complete,
		ChallengesPassed: state.ChallengeIndex,
		FramesSeen:       frames,
		DurationMs:       time.Since(entry.startedAt).Milliseconds(),
	}

	if err := s.attempts.Create(ctx, attempt); err != nil {
		s.logger.Warn("failed to record liveness attempt",
			slog.String("session_id", entry.record.ID.String()),
			slog.Any("error", err),
		)
	}

	return attempt
}
