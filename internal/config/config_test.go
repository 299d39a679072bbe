package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "10000" {
		t.Errorf("Expected default port '10000', got '%s'", cfg.Port)
	}

	if cfg.OracleModel != "glm-4.5" {
		t.Errorf("Expected default oracle model 'glm-4.5', got '%s'", cfg.OracleModel)
	}

	if cfg.SessionTTL != 10*time.Minute {
		t.Errorf("Expected default session TTL 10m, got %v", cfg.SessionTTL)
	}

	if cfg.OracleTimeout != 10*time.Second {
		t.Errorf("Expected default oracle timeout 10s, got %v", cfg.OracleTimeout)
	}

	if cfg.ChatRateBurst != 10 || cfg.ChatRateRefill != 0.5 {
		t.Errorf("Expected default chat rate 10/0.5, got %v/%v", cfg.ChatRateBurst, cfg.ChatRateRefill)
	}
}

func TestLoadOverrides(t *testing.T) {
	_ = os.Setenv("ORACLE_API_KEY", "test_key")
	_ = os.Setenv("ORACLE_MODEL", "glm-4-flash")
	_ = os.Setenv("SESSION_TTL", "5m")
	defer func() { _ = os.Unsetenv("ORACLE_API_KEY") }()
	defer func() { _ = os.Unsetenv("ORACLE_MODEL") }()
	defer func() { _ = os.Unsetenv("SESSION_TTL") }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OracleAPIKey != "test_key" {
		t.Errorf("Expected oracle key 'test_key', got '%s'", cfg.OracleAPIKey)
	}
	if cfg.OracleModel != "glm-4-flash" {
		t.Errorf("Expected oracle model 'glm-4-flash', got '%s'", cfg.OracleModel)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("Expected session TTL 5m, got %v", cfg.SessionTTL)
	}
	if !cfg.HasOracle() {
		t.Error("Expected HasOracle() to be true with ORACLE_API_KEY set")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *Config
		wantErr     bool
		errContains string
	}{
		{
			name: "valid config",
			cfg: &Config{
				Port:           "10000",
				DataDir:        "/data",
				EntitiesPath:   "./data/entities.json",
				OracleBaseURL:  "https://open.bigmodel.cn/api/paas/v4",
				OracleModel:    "glm-4.5",
				OracleTimeout:  10 * time.Second,
				SessionTTL:     10 * time.Minute,
				ChatRateBurst:  10,
				ChatRateRefill: 0.5,
			},
			wantErr: false,
		},
		{
			name: "missing port",
			cfg: &Config{
				DataDir:        "/data",
				EntitiesPath:   "./data/entities.json",
				OracleBaseURL:  "https://open.bigmodel.cn/api/paas/v4",
				OracleModel:    "glm-4.5",
				OracleTimeout:  10 * time.Second,
				SessionTTL:     10 * time.Minute,
				ChatRateBurst:  10,
				ChatRateRefill: 0.5,
			},
			wantErr:     true,
			errContains: "PORT",
		},
		{
			name: "missing entities path",
			cfg: &Config{
				Port:           "10000",
				DataDir:        "/data",
				OracleBaseURL:  "https://open.bigmodel.cn/api/paas/v4",
				OracleModel:    "glm-4.5",
				OracleTimeout:  10 * time.Second,
				SessionTTL:     10 * time.Minute,
				ChatRateBurst:  10,
				ChatRateRefill: 0.5,
			},
			wantErr:     true,
			errContains: "ENTITIES_PATH",
		},
		{
			name: "non-positive session TTL",
			cfg: &Config{
				Port:           "10000",
				DataDir:        "/data",
				EntitiesPath:   "./data/entities.json",
				OracleBaseURL:  "https://open.bigmodel.cn/api/paas/v4",
				OracleModel:    "glm-4.5",
				OracleTimeout:  10 * time.Second,
				ChatRateBurst:  10,
				ChatRateRefill: 0.5,
			},
			wantErr:     true,
			errContains: "SESSION_TTL",
		},
		{
			name: "non-positive chat rate",
			cfg: &Config{
				Port:          "10000",
				DataDir:       "/data",
				EntitiesPath:  "./data/entities.json",
				OracleBaseURL: "https://open.bigmodel.cn/api/paas/v4",
				OracleModel:   "glm-4.5",
				OracleTimeout: 10 * time.Second,
				SessionTTL:    10 * time.Minute,
			},
			wantErr:     true,
			errContains: "CHAT_RATE_BURST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && tt.errContains != "" && err != nil {
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Validate() error = %v, want error containing %q", err, tt.errContains)
				}
			}
		})
	}
}
