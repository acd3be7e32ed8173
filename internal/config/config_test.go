package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8000" {
		t.Fatalf("unexpected addr %q", cfg.HTTP.Addr)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Fatalf("unexpected ttl %v", cfg.Session.TTL)
	}
	if cfg.AI.Strategy != StrategyRules {
		t.Fatalf("unexpected strategy %q", cfg.AI.Strategy)
	}
	if cfg.HTTP.RateLimitPerMin != 120 {
		t.Fatalf("unexpected rate limit %d", cfg.HTTP.RateLimitPerMin)
	}
	if cfg.AuthEnabled() {
		t.Fatalf("auth should be disabled without a project id")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FOODIE_HTTP_ADDR", ":9100")
	t.Setenv("FOODIE_SESSION_TTL", "30m")
	t.Setenv("FOODIE_REDIS_ADDR", "localhost:6379")
	t.Setenv("FOODIE_FIREBASE_PROJECT_ID", "foodiespot-dev")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":9100" || cfg.Session.TTL != 30*time.Minute {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", cfg.Redis.Addr)
	}
	if !cfg.AuthEnabled() {
		t.Fatalf("auth should be enabled")
	}
}

func TestGeminiStrategyRequiresKey(t *testing.T) {
	t.Setenv("FOODIE_INTENT_STRATEGY", StrategyGemini)
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := load(viper.New()); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		var c Config
		c.HTTP.Addr = ":8000"
		c.AI.Strategy = StrategyRules
		return c
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"empty addr", func(c *Config) { c.HTTP.Addr = "" }, false},
		{"negative ttl", func(c *Config) { c.Session.TTL = -time.Second }, false},
		{"unknown strategy", func(c *Config) { c.AI.Strategy = "magic" }, false},
		{"gemini with key", func(c *Config) { c.AI.Strategy = StrategyGemini; c.AI.GeminiKey = "k" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(&c)
			err := c.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
