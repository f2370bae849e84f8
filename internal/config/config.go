package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Oracle
	OracleType string `envconfig:"ORACLE_TYPE" default:"mock"`
	AWSRegion  string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Security
	APIKey string `envconfig:"API_KEY" required:"true"`

	// Liveness geometry. Defaults mirror the production preview guide.
	PreviewSize    float64 `envconfig:"PREVIEW_SIZE" default:"325"`
	EdgeInset      float64 `envconfig:"EDGE_INSET" default:"50"`
	OversizeMargin float64 `envconfig:"OVERSIZE_MARGIN" default:"90"`

	// Sessions
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"10m"`
	// FrameInterval is the advised minimum spacing between frames.
	// Advisory for clients; the core never enforces it.
	FrameInterval time.Duration `envconfig:"FRAME_INTERVAL" default:"100ms"`

	// Completion webhook (optional; disabled when URL is empty)
	WebhookURL    string `envconfig:"WEBHOOK_URL" default:""`
	WebhookSecret string `envconfig:"WEBHOOK_SECRET" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
