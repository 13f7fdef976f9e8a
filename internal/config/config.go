package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGroq       = "groq"
)

// Provider is one OpenAI-compatible endpoint.
type Provider struct {
	APIKey  string `env:"API_KEY"`
	BaseURL string `env:"BASE_URL"`
	Model   string `env:"MODEL"`
}

func (p Provider) Enabled() bool { return strings.TrimSpace(p.APIKey) != "" }

type Config struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	DiscordToken string `env:"DISCORD_TOKEN"`

	Groq       Provider `envPrefix:"GROQ_"`
	OpenRouter Provider `envPrefix:"OPENROUTER_"`
	// PrimaryProvider is tried first; the other one is the fallback.
	PrimaryProvider string `env:"NICKCHECK_PROVIDER" envDefault:"openrouter"`
	AlwaysUseLLM    bool   `env:"NICKCHECK_ALWAYS_USE_LLM" envDefault:"true"`

	LLMMinDelay    time.Duration `env:"LLM_MIN_DELAY" envDefault:"3200ms"`
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"12s"`
	LLMMaxAttempts uint64        `env:"LLM_MAX_ATTEMPTS" envDefault:"3"`
	LLMBackoffBase time.Duration `env:"LLM_BACKOFF_BASE" envDefault:"2s"`
	AICacheTTL     time.Duration `env:"AI_CACHE_TTL" envDefault:"5m"`

	NickFallbackName string `env:"NICK_FALLBACK_NAME"`
	SweepWorkers     int    `env:"SWEEP_WORKERS" envDefault:"4"`
}

func (c Config) IsDevelopment() bool { return c.Env == "development" }

// Providers returns the enabled providers, primary first.
func (c Config) Providers() []NamedProvider {
	order := []NamedProvider{{ProviderOpenRouter, c.OpenRouter}, {ProviderGroq, c.Groq}}
	if c.PrimaryProvider == ProviderGroq {
		order[0], order[1] = order[1], order[0]
	}
	out := order[:0]
	for _, p := range order {
		if p.Enabled() {
			out = append(out, p)
		}
	}
	return out
}

type NamedProvider struct {
	Name string
	Provider
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, oops.In("config").Wrapf(err, "load .env")
	}
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, oops.In("config").Wrapf(err, "parse env")
	}
	if cfg.Groq.BaseURL == "" {
		cfg.Groq.BaseURL = "https://api.groq.com/openai/v1/"
	}
	if cfg.Groq.Model == "" {
		cfg.Groq.Model = "llama-3.1-8b-instant"
	}
	if cfg.OpenRouter.BaseURL == "" {
		cfg.OpenRouter.BaseURL = "https://openrouter.ai/api/v1/"
	}
	if cfg.OpenRouter.Model == "" {
		cfg.OpenRouter.Model = "meta-llama/llama-3.1-8b-instruct"
	}
	cfg.PrimaryProvider = strings.ToLower(strings.TrimSpace(cfg.PrimaryProvider))
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	errb := oops.In("config")
	switch {
	case c.PrimaryProvider != ProviderOpenRouter && c.PrimaryProvider != ProviderGroq:
		return errb.With("provider", c.PrimaryProvider).Errorf("NICKCHECK_PROVIDER must be %q or %q", ProviderOpenRouter, ProviderGroq)
	case c.LLMMinDelay < 0:
		return errb.With("delay", c.LLMMinDelay).Errorf("LLM_MIN_DELAY must not be negative")
	case c.LLMTimeout <= 0:
		return errb.With("timeout", c.LLMTimeout).Errorf("LLM_TIMEOUT must be positive")
	case c.LLMMaxAttempts < 1:
		return errb.Errorf("LLM_MAX_ATTEMPTS must be at least 1")
	case c.LLMBackoffBase <= 0:
		return errb.With("backoff", c.LLMBackoffBase).Errorf("LLM_BACKOFF_BASE must be positive")
	case c.SweepWorkers < 1:
		return errb.With("workers", c.SweepWorkers).Errorf("SWEEP_WORKERS must be at least 1")
	}
	return nil
}
