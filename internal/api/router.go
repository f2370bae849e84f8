package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/liva/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/liva/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/liva/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/liva/internal/config"
	"github.com/saturnino-fabrica-de-software/liva/internal/domain"
	"github.com/saturnino-fabrica-de-software/liva/internal/liveness"
	"github.com/saturnino-fabrica-de-software/liva/internal/provider"
	"github.com/saturnino-fabrica-de-software/liva/internal/repository"
	"github.com/saturnino-fabrica-de-software/liva/internal/service"
	"github.com/saturnino-fabrica-de-software/liva/internal/webhook"
	"github.com/saturnino-fabrica-de-software/liva/internal/ws"
)

type Dependencies struct {
	Config *config.Config
	Oracle provider.FrameOracle
	DB     *pgxpool.Pool
}

type Router struct {
	app           *fiber.App
	logger        *slog.Logger
	deps          *Dependencies
	wsHub         *ws.Hub
	webhookWorker *webhook.Worker
	cancelWorker  context.CancelFunc
	cancelJanitor context.CancelFunc
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "Liva API",
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.HeaderAPIKey,
	}))

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints (no auth required)
	healthHandler := handler.NewHealthHandler()
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// API v1 group with authentication
	v1 := r.app.Group("/v1")

	// Only configure authenticated routes if dependencies were provided
	if r.deps != nil {
		cfg := r.deps.Config

		r.wsHub = ws.NewHub()
		go r.wsHub.Run()

		// Webhook queue and delivery worker
		webhookService := webhook.NewService(r.deps.DB, cfg.WebhookURL, cfg.WebhookSecret)
		r.webhookWorker = webhook.NewWorker(r.deps.DB, webhookService, r.logger)

		workerCtx, cancelWorker := context.WithCancel(context.Background())
		r.cancelWorker = cancelWorker
		go r.webhookWorker.Run(workerCtx)

		v1.Use(middleware.Auth(cfg.APIKey))

		attemptRepo := repository.NewAttemptRepository(r.deps.DB)

		livenessConfig := liveness.Config{
			Preview: domain.Rect{
				MinX:   0,
				MinY:   0,
				Width:  cfg.PreviewSize,
				Height: cfg.PreviewSize,
			},
			EdgeInset:      cfg.EdgeInset,
			OversizeMargin: cfg.OversizeMargin,
			Challenges:     domain.DefaultChallenges(),
		}

		livenessService := service.NewLivenessService(
			r.deps.Oracle,
			attemptRepo,
			r.wsHub,
			webhookService,
			livenessConfig,
			cfg.SessionTTL,
			r.logger,
		)

		sessionHandler := handler.NewSessionHandler(livenessService, r.logger)

		v1.Post("/sessions", sessionHandler.Create)
		v1.Post("/sessions/:id/frames", sessionHandler.SubmitFrame)
		v1.Get("/sessions/:id", sessionHandler.Get)
		v1.Delete("/sessions/:id", sessionHandler.Delete)
		v1.Get("/attempts", sessionHandler.ListAttempts)

		// Expired session janitor
		janitor := service.NewJanitor(livenessService, r.logger, cfg.SessionTTL/10)
		janitorCtx, cancelJanitor := context.WithCancel(context.Background())
		r.cancelJanitor = cancelJanitor
		go janitor.Run(janitorCtx)

		// WebSocket endpoint
		v1.Get("/ws", ws.UpgradeMiddleware(), ws.Handler(r.wsHub))
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	if r.cancelWorker != nil {
		r.cancelWorker()
	}

	if r.cancelJanitor != nil {
		r.cancelJanitor()
	}

	return r.app.Shutdown()
}
