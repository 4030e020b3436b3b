package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/tracetutor/internal/store"
)

// NewProvider creates a Provider from configuration.
// Real providers are wrapped as caller → retry → logging → base, so every
// attempt lands in the event log. eventRepo may be nil to skip logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewOfflineProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo != nil {
		base = WithLogging(base, eventRepo)
	}
	return WithRetry(base, cfg.Retry), nil
}

// ErrNotConfigured is returned by NewProviderFromEnv when no provider is
// selected and no standard API key is present.
var ErrNotConfigured = errors.New("no LLM provider configured")

// NewProviderFromEnv builds a provider from TRACETUTOR_LLM_* variables,
// falling back to the standard API key variables.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if !Configured() {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, ErrNotConfigured
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}
