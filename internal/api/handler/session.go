package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
	"github.com/saturnino-fabrica-de-software/liva/internal/service"
)

const (
	maxImageSize = 5 * 1024 * 1024 // Rekognition's DetectFaces limit
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// SessionService interface for the service
type SessionService interface {
	CreateSession(ctx context.Context, clientRef string) (*domain.Session, []domain.Challenge, error)
	SubmitFrame(ctx context.Context, id uuid.UUID, image []byte) (*service.FrameResult, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.Session, *service.FrameResult, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ListAttempts(ctx context.Context, limit int) ([]domain.Attempt, error)
}

// SessionHandler handles liveness session requests
type SessionHandler struct {
	service  SessionService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewSessionHandler(svc SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		service:  svc,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateSessionRequest body for session creation
type CreateSessionRequest struct {
	ClientRef string `json:"client_ref" validate:"omitempty,max=128"`
}

// ChallengeResponse one challenge in the sequence
type ChallengeResponse struct {
	Kind        string `json:"kind"`
	Instruction string `json:"instruction"`
}

// CreateSessionResponse response for session creation
type CreateSessionResponse struct {
	SessionID  string              `json:"session_id"`
	Challenges []ChallengeResponse `json:"challenges"`
	ExpiresAt  string              `json:"expires_at"`
}

// SessionResponse response for session state queries
type SessionResponse struct {
	SessionID   string                `json:"session_id"`
	State       domain.DetectionState `json:"state"`
	Instruction string                `json:"instruction,omitempty"`
	Completed   bool                  `json:"completed"`
	ExpiresAt   string                `json:"expires_at"`
}

// AttemptsResponse response for the attempts audit listing
type AttemptsResponse struct {
	Attempts []domain.Attempt `json:"attempts"`
}

// Create POST /v1/sessions - start a liveness session
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.ErrBadRequest.WithError(err)
		}
	}

	if err := h.validate.Struct(req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}

	session, challenges, err := h.service.CreateSession(c.Context(), strings.TrimSpace(req.ClientRef))
	if err != nil {
		return err
	}

	resp := CreateSessionResponse{
		SessionID: session.ID.String(),
		ExpiresAt: session.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	}
	for _, ch := range challenges {
		resp.Challenges = append(resp.Challenges, ChallengeResponse{
			Kind:        string(ch.Kind),
			Instruction: ch.Instruction,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// SubmitFrame POST /v1/sessions/:id/frames - evaluate one camera frame
func (h *SessionHandler) SubmitFrame(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}

	result, err := h.service.SubmitFrame(c.Context(), id, imageBytes)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Get GET /v1/sessions/:id - current session state
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	session, result, err := h.service.GetSession(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(SessionResponse{
		SessionID:   session.ID.String(),
		State:       result.State,
		Instruction: result.Instruction,
		Completed:   result.Completed,
		ExpiresAt:   session.ExpiresAt.Format("2006-01-02T15:04:05Z"),
	})
}

// Delete DELETE /v1/sessions/:id - abandon a session
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteSession(c.Context(), id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListAttempts GET /v1/attempts - recent attempt audit records
func (h *SessionHandler) ListAttempts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		return domain.ErrValidationFailed.WithError(errors.New("limit must be between 1 and 100"))
	}

	attempts, err := h.service.ListAttempts(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(AttemptsResponse{Attempts: attempts})
}

func parseSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.ErrValidationFailed.WithError(errors.New("invalid session id"))
	}
	return id, nil
}

// extractAndValidateImage extracts and validates the image from the form
func extractAndValidateImage(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	if file.Size > maxImageSize {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	if file.Size == 0 {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage.WithError(nil)
	}

	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	return imageBytes, nil
}
