package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config selects and configures the provider used for second opinions.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter"
	// or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one review, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty for api.openai.com
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty for openrouter.ai
}

// RetryConfig controls how transient failures are retried.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// envPrefix starts every setting read by ConfigFromEnv.
const envPrefix = "TRACETUTOR_LLM_"

// providerSetting locates one provider's key and model in a Config.
type providerSetting struct {
	name string

	// stdKeyVar is the vendor's usual API key variable, probed by
	// DiscoverConfig.
	stdKeyVar string

	key   func(*Config) *string
	model func(*Config) *string
}

// providerSettings is ordered by discovery priority.
var providerSettings = []providerSetting{
	{"gemini", "GEMINI_API_KEY",
		func(c *Config) *string { return &c.Gemini.APIKey },
		func(c *Config) *string { return &c.Gemini.Model }},
	{"openai", "OPENAI_API_KEY",
		func(c *Config) *string { return &c.OpenAI.APIKey },
		func(c *Config) *string { return &c.OpenAI.Model }},
	{"anthropic", "ANTHROPIC_API_KEY",
		func(c *Config) *string { return &c.Anthropic.APIKey },
		func(c *Config) *string { return &c.Anthropic.Model }},
	{"openrouter", "OPENROUTER_API_KEY",
		func(c *Config) *string { return &c.OpenRouter.APIKey },
		func(c *Config) *string { return &c.OpenRouter.Model }},
}

func settingFor(provider string) (providerSetting, bool) {
	for _, s := range providerSettings {
		if s.name == provider {
			return s, true
		}
	}
	return providerSetting{}, false
}

// keyVar is the TRACETUTOR_LLM_* variable holding the provider's key.
func (s providerSetting) keyVar() string {
	return envPrefix + strings.ToUpper(s.name) + "_API_KEY"
}

// ConfigFromEnv reads TRACETUTOR_LLM_PROVIDER, TRACETUTOR_LLM_TIMEOUT,
// TRACETUTOR_LLM_MAX_ATTEMPTS and, per provider,
// TRACETUTOR_LLM_<PROVIDER>_API_KEY and TRACETUTOR_LLM_<PROVIDER>_MODEL.
// Unset values keep their defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "PROVIDER")

	for _, s := range providerSettings {
		prefix := strings.ToUpper(s.name) + "_"
		setFromEnv(s.key(&cfg), prefix+"API_KEY")
		setFromEnv(s.model(&cfg), prefix+"MODEL")
	}
	setFromEnv(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setFromEnv(&cfg.OpenRouter.BaseURL, "OPENROUTER_BASE_URL")

	if d, err := time.ParseDuration(os.Getenv(envPrefix + "TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv(envPrefix + "MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	return cfg
}

// Configured reports whether the environment selects a provider explicitly.
func Configured() bool {
	return os.Getenv(envPrefix+"PROVIDER") != ""
}

func setFromEnv(dst *string, suffix string) {
	if v := os.Getenv(envPrefix + suffix); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first provider whose standard API key variable
// is set, in the order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	for _, s := range providerSettings {
		if k := os.Getenv(s.stdKeyVar); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = s.name
			*s.key(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider exists and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	s, ok := settingFor(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *s.key(&c) == "" {
		return fmt.Errorf("%s is required for the %s provider", s.keyVar(), s.name)
	}
	return nil
}
