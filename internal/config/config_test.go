package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*Config) bool
	}{
		{
			name: "loads with all required vars",
			envVars: map[string]string{
				"PORT":         "8080",
				"ENV":          "production",
				"DATABASE_URL": "postgres://localhost/test",
				"API_KEY":      "secret123",
				"ORACLE_TYPE":  "rekognition",
				"SESSION_TTL":  "5m",
			},
			wantErr: false,
			check: func(c *Config) bool {
				return c.Port == 8080 &&
					c.Environment == "production" &&
					c.DatabaseURL == "postgres://localhost/test" &&
					c.APIKey == "secret123" &&
					c.OracleType == "rekognition" &&
					c.SessionTTL == 5*time.Minute
			},
		},
		{
			name: "uses defaults when optional vars missing",
			envVars: map[string]string{
				"DATABASE_URL": "postgres://localhost/test",
				"API_KEY":      "secret123",
			},
			wantErr: false,
			check: func(c *Config) bool {
				return c.Port == 3000 &&
					c.Environment == "development" &&
					c.OracleType == "mock" &&
					c.PreviewSize == 325 &&
					c.EdgeInset == 50 &&
					c.OversizeMargin == 90 &&
					c.SessionTTL == 10*time.Minute &&
					c.FrameInterval == 100*time.Millisecond
			},
		},
		{
			name: "fails when DATABASE_URL missing",
			envVars: map[string]string{
				"API_KEY": "secret123",
			},
			wantErr: true,
			check:   nil,
		},
		{
			name: "fails when API_KEY missing",
			envVars: map[string]string{
				"DATABASE_URL": "postgres://localhost/test",
			},
			wantErr: true,
			check:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			// Set test environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Load() config check failed: %+v", cfg)
			}
		})
	}
}

func TestConfig_EnvironmentHelpers(t *testing.T) {
	dev := &Config{Environment: "development"}
	if !dev.IsDevelopment() || dev.IsProduction() {
		t.Error("development helpers wrong")
	}

	prod := &Config{Environment: "production"}
	if !prod.IsProduction() || prod.IsDevelopment() {
		t.Error("production helpers wrong")
	}
}
