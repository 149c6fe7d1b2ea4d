// Package careeradvice answers free-form career questions through a language model.
package careeradvice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"academy-assistant/internal/common/config"
	"academy-assistant/internal/common/logger"
	"academy-assistant/internal/common/metrics"
)

const fallbackReply = "I'm not sure how to answer that yet. Could you tell me a bit more about your football goals?"

type Handler struct {
	config   *Config
	provider Provider
	logger   logger.Logger
}

func NewHandler(cfg *Config, provider Provider, log logger.Logger) *Handler {
	if cfg == nil {
		cfg = LoadConfig(config.AdvisoryConfig{})
	}
	return &Handler{
		config:   cfg,
		provider: provider,
		logger:   logger.ForComponent(log, "career-advice"),
	}
}

// Execute builds the prompt for the input's mode and asks the provider for a reply.
// Errors wrap ErrAdvisoryTimeout, ErrAdvisoryFailed or ErrAdvisoryNotConfigured.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if h.provider == nil {
		return nil, ErrAdvisoryNotConfigured
	}
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", ErrAdvisoryFailed)
	}

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	prompt := Prompt{
		System:      buildSystemPrompt(input.Mode, input.Member),
		History:     trimHistory(input.History, h.config.HistoryLimit),
		Question:    question,
		Temperature: h.config.Temperature,
		MaxTokens:   h.config.MaxTokens,
	}

	start := time.Now()
	text, err := h.provider.Generate(ctx, prompt)
	duration := time.Since(start)
	if err != nil {
		err = classify(ctx, err)
		result := "failed"
		if errors.Is(err, ErrAdvisoryTimeout) {
			result = "timeout"
		}
		metrics.RecordAdvisory(h.provider.Name(), result, duration)
		h.logger.Error("advisory request failed", map[string]interface{}{
			"provider": h.provider.Name(),
			"mode":     string(input.Mode),
			"error":    err,
		})
		return nil, err
	}

	out := &Output{Reply: strings.TrimSpace(text), Provider: h.provider.Name()}
	if out.Reply == "" {
		out.Reply = fallbackReply
		out.Fallback = true
	}
	metrics.RecordAdvisory(h.provider.Name(), "ok", duration)

	h.logger.Info("advisory reply generated", map[string]interface{}{
		"provider":   h.provider.Name(),
		"mode":       string(input.Mode),
		"historyLen": len(prompt.History),
		"durationMs": duration.Milliseconds(),
		"fallback":   out.Fallback,
	})
	return out, nil
}
