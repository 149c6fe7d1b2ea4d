package conversationrouter

import "academy-assistant/internal/common/config"

type Config struct {
	ApplicationFormURL string
	// AdvisoryHint appends the pathway hint to general-inquiry replies that talk about the
	// academy, a program or a career.
	AdvisoryHint bool
}

func LoadConfig(cfg config.IntakeConfig) *Config {
	return &Config{
		ApplicationFormURL: cfg.ApplicationFormURL,
		AdvisoryHint:       true,
	}
}
