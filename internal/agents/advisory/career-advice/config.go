package careeradvice

import (
	"time"

	"academy-assistant/internal/common/config"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderGateway   = "gateway"
)

type Config struct {
	Provider     string
	Model        string
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	MaxTokens    int
	Temperature  float64
	HistoryLimit int
}

func LoadConfig(cfg config.AdvisoryConfig) *Config {
	c := &Config{
		Provider:     cfg.Provider,
		Model:        cfg.Model,
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		Timeout:      30 * time.Second,
		MaxRetries:   cfg.MaxRetries,
		MaxTokens:    cfg.MaxTokens,
		Temperature:  cfg.Temperature,
		HistoryLimit: cfg.HistoryLimit,
	}
	if c.Provider == "" {
		c.Provider = ProviderGemini
	}
	if cfg.Timeout > 0 {
		c.Timeout = config.GetDuration(cfg.Timeout)
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 1024
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.3
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 20
	}
	return c
}
