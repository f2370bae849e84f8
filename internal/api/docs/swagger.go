package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// ChallengeData represents one challenge in the session sequence
type ChallengeData struct {
	Kind        string `json:"kind" example:"blink"`
	Instruction string `json:"instruction" example:"Blink both eyes"`
}

// CreateSessionResponse represents the response for session creation
type CreateSessionResponse struct {
	SessionID  string          `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Challenges []ChallengeData `json:"challenges"`
	ExpiresAt  string          `json:"expires_at" example:"2024-01-01T00:10:00Z"`
}

// DetectionStateData represents the per-frame detection state
type DetectionStateData struct {
	FaceDetected   bool    `json:"face_detected" example:"true"`
	FaceTooBig     bool    `json:"face_too_big" example:"false"`
	ChallengeIndex int     `json:"challenge_index" example:"2"`
	ProgressFill   float64 `json:"progress_fill" example:"50.0"`
	Complete       bool    `json:"complete" example:"false"`
}

// FrameResultResponse represents the outcome of one evaluated frame
type FrameResultResponse struct {
	SessionID   string             `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	State       DetectionStateData `json:"state"`
	Instruction string             `json:"instruction,omitempty" example:"Turn your head to the left"`
	Advanced    bool               `json:"advanced" example:"false"`
	Completed   bool               `json:"completed" example:"false"`
}

// SessionStateResponse represents the current state of a session
type SessionStateResponse struct {
	SessionID   string             `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	State       DetectionStateData `json:"state"`
	Instruction string             `json:"instruction,omitempty" example:"Smile"`
	Completed   bool               `json:"completed" example:"false"`
	ExpiresAt   string             `json:"expires_at" example:"2024-01-01T00:10:00Z"`
}

// AttemptData represents one recorded liveness attempt
type AttemptData struct {
	ID               string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SessionID        string `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClientRef        string `json:"client_ref" example:"kiosk-7"`
	Completed        bool   `json:"completed" example:"true"`
	ChallengesPassed int    `json:"challenges_passed" example:"5"`
	FramesSeen       int    `json:"frames_seen" example:"42"`
	DurationMs       int64  `json:"duration_ms" example:"8600"`
	CreatedAt        string `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// AttemptsResponse wraps the attempt audit listing
type AttemptsResponse struct {
	Attempts []AttemptData `json:"attempts"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// EmptyResponse represents no content response (204)
type EmptyResponse struct{}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Liva Active Liveness API",
		Version:     "v1.0.0",
		Description: "Active liveness session API: positions a single live face inside the capture guide and walks it through blink, head turn, nod and smile challenges",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /v1/sessions - Create liveness session
		endpoint.New(
			endpoint.POST,
			"/sessions",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Create a liveness session"),
			endpoint.WithDescription("Starts a new active liveness session and returns the ordered challenge sequence the client must complete."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(CreateSessionResponse{}, "201", "Session created successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "client_ref too long"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// POST /v1/sessions/:id/frames - Submit a frame
		endpoint.New(
			endpoint.POST,
			"/sessions/{id}/frames",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Submit a camera frame"),
			endpoint.WithDescription("Measures the frame, qualifies the face (count, position, size) and evaluates the current challenge. Returns the new detection state and the instruction to show."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Session UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FrameResultResponse{}, "200", "Frame evaluated"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Invalid session id or missing image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "Liveness session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "SESSION_EXPIRED", Message: "Liveness session has expired"}, "410", "Gone"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "ORACLE_UNAVAILABLE", Message: "Face measurement provider is unavailable"}, "502", "Bad Gateway"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/sessions/:id - Get session state
		endpoint.New(
			endpoint.GET,
			"/sessions/{id}",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Get session state"),
			endpoint.WithDescription("Returns the session's current detection state and instruction without consuming a frame."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Session UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionStateResponse{}, "200", "Session state retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "Liveness session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "SESSION_EXPIRED", Message: "Liveness session has expired"}, "410", "Gone"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// DELETE /v1/sessions/:id - Abandon session
		endpoint.New(
			endpoint.DELETE,
			"/sessions/{id}",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Abandon a session"),
			endpoint.WithDescription("Removes the session. The unfinished attempt is still recorded for auditing."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Session UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmptyResponse{}, "204", "Session removed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "Liveness session not found"}, "404", "Not Found"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/attempts - List recent attempts
		endpoint.New(
			endpoint.GET,
			"/attempts",
			endpoint.WithTags("Attempts"),
			endpoint.WithSummary("List recent liveness attempts"),
			endpoint.WithDescription("Returns the most recent recorded attempts, newest first."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.IntParam("limit", parameter.Query, parameter.WithDescription("Maximum number of attempts (1-100, default: 20)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AttemptsResponse{}, "200", "Attempts retrieved"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "limit must be between 1 and 100"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
