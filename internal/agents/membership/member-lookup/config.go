package memberlookup

import (
	"time"

	"academy-assistant/internal/common/config"
)

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
	// UseSeed falls back to the built-in directory when neither cache nor database knows the id.
	UseSeed bool
}

func LoadConfig(cfg config.MembersConfig) *Config {
	c := &Config{
		Timeout:  5 * time.Second,
		CacheTTL: 10 * time.Minute,
		UseSeed:  true,
	}
	if cfg.CacheTTL > 0 {
		c.CacheTTL = config.GetSeconds(cfg.CacheTTL)
	}
	return c
}
