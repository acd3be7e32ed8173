// README: Config loader: env-first settings for HTTP, DB, Redis, sessions, intent strategy, auth and logging.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	StrategyRules  = "rules"
	StrategyGemini = "gemini"
)

var ErrInvalidConfig = errors.New("invalid config")

type SessionConfig struct {
	TTL   time.Duration
	Sweep string
}

type Config struct {
	Env string
	Log struct {
		Level string
	}
	HTTP struct {
		Addr            string
		RateLimitPerMin int
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Session SessionConfig
	AI      struct {
		Strategy  string
		GeminiKey string
	}
	Auth struct {
		ProjectID       string
		CredentialsFile string
	}
}

func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("FOODIE_ENV", "development")
	v.SetDefault("FOODIE_LOG_LEVEL", "info")
	v.SetDefault("FOODIE_HTTP_ADDR", ":8000")
	v.SetDefault("FOODIE_RATE_LIMIT_PER_MIN", 120)
	v.SetDefault("FOODIE_DB_DSN", "")
	v.SetDefault("FOODIE_REDIS_ADDR", "")
	v.SetDefault("FOODIE_SESSION_TTL", "2h")
	v.SetDefault("FOODIE_SESSION_SWEEP", "@every 5m")
	v.SetDefault("FOODIE_INTENT_STRATEGY", StrategyRules)
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("FOODIE_FIREBASE_PROJECT_ID", "")
	v.SetDefault("FOODIE_FIREBASE_CREDENTIALS", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	cfg.Env = v.GetString("FOODIE_ENV")
	cfg.Log.Level = v.GetString("FOODIE_LOG_LEVEL")
	cfg.HTTP.Addr = v.GetString("FOODIE_HTTP_ADDR")
	cfg.HTTP.RateLimitPerMin = v.GetInt("FOODIE_RATE_LIMIT_PER_MIN")
	cfg.DB.DSN = v.GetString("FOODIE_DB_DSN")
	cfg.Redis.Addr = v.GetString("FOODIE_REDIS_ADDR")
	cfg.Session.TTL = v.GetDuration("FOODIE_SESSION_TTL")
	cfg.Session.Sweep = v.GetString("FOODIE_SESSION_SWEEP")
	cfg.AI.Strategy = v.GetString("FOODIE_INTENT_STRATEGY")
	cfg.AI.GeminiKey = v.GetString("GEMINI_API_KEY")
	cfg.Auth.ProjectID = v.GetString("FOODIE_FIREBASE_PROJECT_ID")
	cfg.Auth.CredentialsFile = v.GetString("FOODIE_FIREBASE_CREDENTIALS")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("%w: http addr is empty", ErrInvalidConfig)
	}
	switch c.AI.Strategy {
	case StrategyRules:
	case StrategyGemini:
		if c.AI.GeminiKey == "" {
			return fmt.Errorf("%w: GEMINI_API_KEY is required for the gemini strategy", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown intent strategy %q", ErrInvalidConfig, c.AI.Strategy)
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("%w: negative session ttl", ErrInvalidConfig)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) AuthEnabled() bool {
	return c.Auth.ProjectID != ""
}
