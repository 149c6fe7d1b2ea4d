package careeradvice

import (
	"context"
	"errors"
	"fmt"

	"academy-assistant/internal/models"
)

var (
	ErrAdvisoryTimeout       = errors.New("ADVISORY_TIMEOUT")
	ErrAdvisoryFailed        = errors.New("ADVISORY_FAILED")
	ErrAdvisoryNotConfigured = errors.New("ADVISORY_NOT_CONFIGURED")
)

// Provider generates one reply from a language model.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(ctx context.Context, cfg *Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg)
	case ProviderGateway:
		return NewGatewayProvider(cfg)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrAdvisoryNotConfigured, cfg.Provider)
	}
}

// transcript is the prompt history followed by the question, normalized to strict
// user/assistant alternation.
func transcript(p Prompt) []models.Message {
	msgs := make([]models.Message, 0, len(p.History)+1)
	msgs = append(msgs, p.History...)
	msgs = append(msgs, models.Message{Role: models.RoleUser, Content: p.Question})
	return alternate(msgs)
}

// classify maps a provider error onto the advisory sentinels.
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAdvisoryTimeout) || errors.Is(err, ErrAdvisoryFailed) || errors.Is(err, ErrAdvisoryNotConfigured) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrAdvisoryTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrAdvisoryFailed, err)
}
