package coachrecruitment

import "academy-assistant/internal/common/config"

type Config struct {
	MinAge         int
	WarnAboveAge   int
	MinYears       int
	WarnAboveYears int

	EligibleMinAge   int
	EligibleMinYears int

	MinSpecialtyLength int
	MinStartDateLength int
}

func DefaultConfig() *Config {
	return &Config{
		MinAge:             25,
		WarnAboveAge:       70,
		MinYears:           5,
		WarnAboveYears:     40,
		EligibleMinAge:     30,
		EligibleMinYears:   8,
		MinSpecialtyLength: 3,
		MinStartDateLength: 3,
	}
}

func LoadConfig(t config.CoachThresholds) *Config {
	cfg := DefaultConfig()
	if t.MinAge != 0 {
		cfg.MinAge = t.MinAge
	}
	if t.WarnAboveAge != 0 {
		cfg.WarnAboveAge = t.WarnAboveAge
	}
	if t.MinYears != 0 {
		cfg.MinYears = t.MinYears
	}
	if t.WarnAboveYears != 0 {
		cfg.WarnAboveYears = t.WarnAboveYears
	}
	if t.EligibleMinAge != 0 {
		cfg.EligibleMinAge = t.EligibleMinAge
	}
	if t.EligibleMinYears != 0 {
		cfg.EligibleMinYears = t.EligibleMinYears
	}
	return cfg
}
