package playerscouting

import "academy-assistant/internal/common/config"

type Config struct {
	MinAge         int
	MaxAge         int
	WarnAboveAge   int
	MaxYearsPlayed int
	WarnBelowYears int

	EligibleMinAge   int
	EligibleMaxAge   int
	EligibleMinYears int
	EligibleMaxYears int

	MinPace              int
	MaxPace              int
	MinPhysicalLength    int
	MinAchievementLength int
}

func DefaultConfig() *Config {
	return &Config{
		MinAge:               16,
		MaxAge:               30,
		WarnAboveAge:         24,
		MaxYearsPlayed:       20,
		WarnBelowYears:       3,
		EligibleMinAge:       16,
		EligibleMaxAge:       24,
		EligibleMinYears:     3,
		EligibleMaxYears:     5,
		MinPace:              1,
		MaxPace:              10,
		MinPhysicalLength:    10,
		MinAchievementLength: 5,
	}
}

// LoadConfig maps the intake.player section. Zero values keep the defaults.
func LoadConfig(t config.PlayerThresholds) *Config {
	cfg := DefaultConfig()
	set := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	set(&cfg.MinAge, t.MinAge)
	set(&cfg.MaxAge, t.MaxAge)
	set(&cfg.WarnAboveAge, t.WarnAboveAge)
	set(&cfg.MaxYearsPlayed, t.MaxYearsPlayed)
	set(&cfg.WarnBelowYears, t.WarnBelowYears)
	set(&cfg.EligibleMinAge, t.EligibleMinAge)
	set(&cfg.EligibleMaxAge, t.EligibleMaxAge)
	set(&cfg.EligibleMinYears, t.EligibleMinYears)
	set(&cfg.EligibleMaxYears, t.EligibleMaxYears)
	set(&cfg.MinPace, t.MinPace)
	set(&cfg.MaxPace, t.MaxPace)
	set(&cfg.MinPhysicalLength, t.MinPhysicalLength)
	set(&cfg.MinAchievementLength, t.MinAchievementsSize)
	return cfg
}
