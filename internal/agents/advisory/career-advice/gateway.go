package careeradvice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GatewayProvider calls an internal AI gateway exposing POST /api/ai/generate.
type GatewayProvider struct {
	baseURL    string
	maxRetries int
	client     *http.Client
}

func NewGatewayProvider(cfg *Config) (*GatewayProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: gateway base url is required", ErrAdvisoryNotConfigured)
	}
	return &GatewayProvider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		// no client timeout; the caller's context bounds each request
		client: &http.Client{},
	}, nil
}

func (p *GatewayProvider) Name() string { return ProviderGateway }

type gatewayRequest struct {
	Prompt      string                 `json:"prompt"`
	Context     map[string]interface{} `json:"context"`
	MaxTokens   int                    `json:"max_tokens"`
	Temperature float64                `json:"temperature"`
}

type gatewayResponse struct {
	Text string `json:"text"`
}

func (p *GatewayProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	body, err := json.Marshal(gatewayRequest{
		Prompt: prompt.Question,
		Context: map[string]interface{}{
			"system":  prompt.System,
			"history": transcript(prompt),
		},
		MaxTokens:   prompt.MaxTokens,
		Temperature: prompt.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdvisoryFailed, err)
	}

	var (
		resp    *http.Response
		lastErr error
	)
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ErrAdvisoryTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/ai/generate", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrAdvisoryFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, lastErr = p.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			status := resp.StatusCode
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", status)
			resp = nil
			// client errors will not succeed on retry
			if status != http.StatusTooManyRequests && status < 500 {
				break
			}
		}

		if ctx.Err() != nil {
			return "", ErrAdvisoryTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrAdvisoryTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrAdvisoryFailed, lastErr)
	}
	defer resp.Body.Close()

	var out gatewayResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrAdvisoryFailed, err)
	}
	return out.Text, nil
}
