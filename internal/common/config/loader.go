package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml over it and applies env overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "$") {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal && expanded != "" {
			v.Set(key, expanded)
		}
	}
}

func overrideEmptyConfig(cfg *Config) {
	setIfEmpty := func(dst *string, envKey string) {
		if *dst != "" {
			return
		}
		if val := os.Getenv(envKey); val != "" {
			*dst = val
		}
	}

	setIfEmpty(&cfg.Intake.ApplicationFormURL, "APPLICATION_FORM_URL")
	switch cfg.Advisory.Provider {
	case "gemini":
		setIfEmpty(&cfg.Advisory.APIKey, "GEMINI_API_KEY")
	case "anthropic":
		setIfEmpty(&cfg.Advisory.APIKey, "ANTHROPIC_API_KEY")
	}
	setIfEmpty(&cfg.Advisory.BaseURL, "ADVISORY_BASE_URL")
	setIfEmpty(&cfg.Database.Postgres.User, "DB_USER")
	setIfEmpty(&cfg.Database.Postgres.Password, "DB_PASSWORD")
	setIfEmpty(&cfg.Database.Redis.Address, "REDIS_ADDRESS")
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "academy-assistant"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	applyPlayerDefaults(&cfg.Intake.Player)
	applyCoachDefaults(&cfg.Intake.Coach)

	if cfg.Advisory.Provider == "" {
		cfg.Advisory.Provider = "gemini"
	}
	if cfg.Advisory.Model == "" {
		switch cfg.Advisory.Provider {
		case "anthropic":
			cfg.Advisory.Model = "claude-sonnet-4-5"
		default:
			cfg.Advisory.Model = "gemini-2.5-flash"
		}
	}
	if cfg.Advisory.Temperature == 0 {
		cfg.Advisory.Temperature = 0.3
	}
	if cfg.Advisory.MaxTokens == 0 {
		cfg.Advisory.MaxTokens = 1024
	}
	if cfg.Advisory.Timeout == 0 {
		cfg.Advisory.Timeout = 30000
	}
	if cfg.Advisory.MaxRetries == 0 {
		cfg.Advisory.MaxRetries = 2
	}
	if cfg.Advisory.HistoryLimit == 0 {
		cfg.Advisory.HistoryLimit = 20
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 2
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Session.Store == "" {
		cfg.Session.Store = "memory"
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 3600
	}
	if cfg.Members.CacheTTL == 0 {
		cfg.Members.CacheTTL = 600
	}
}

func applyPlayerDefaults(p *PlayerThresholds) {
	defaults := PlayerThresholds{
		MinAge: 16, MaxAge: 30, WarnAboveAge: 24,
		MaxYearsPlayed: 20, WarnBelowYears: 3,
		EligibleMinAge: 16, EligibleMaxAge: 24,
		EligibleMinYears: 3, EligibleMaxYears: 5,
		MinPace: 1, MaxPace: 10,
		MinPhysicalLength: 10, MinAchievementsSize: 5,
	}
	fill := func(dst *int, def int) {
		if *dst == 0 {
			*dst = def
		}
	}
	fill(&p.MinAge, defaults.MinAge)
	fill(&p.MaxAge, defaults.MaxAge)
	fill(&p.WarnAboveAge, defaults.WarnAboveAge)
	fill(&p.MaxYearsPlayed, defaults.MaxYearsPlayed)
	fill(&p.WarnBelowYears, defaults.WarnBelowYears)
	fill(&p.EligibleMinAge, defaults.EligibleMinAge)
	fill(&p.EligibleMaxAge, defaults.EligibleMaxAge)
	fill(&p.EligibleMinYears, defaults.EligibleMinYears)
	fill(&p.EligibleMaxYears, defaults.EligibleMaxYears)
	fill(&p.MinPace, defaults.MinPace)
	fill(&p.MaxPace, defaults.MaxPace)
	fill(&p.MinPhysicalLength, defaults.MinPhysicalLength)
	fill(&p.MinAchievementsSize, defaults.MinAchievementsSize)
}

func applyCoachDefaults(c *CoachThresholds) {
	if c.MinAge == 0 {
		c.MinAge = 25
	}
	if c.WarnAboveAge == 0 {
		c.WarnAboveAge = 70
	}
	if c.MinYears == 0 {
		c.MinYears = 5
	}
	if c.WarnAboveYears == 0 {
		c.WarnAboveYears = 40
	}
	if c.EligibleMinAge == 0 {
		c.EligibleMinAge = 30
	}
	if c.EligibleMinYears == 0 {
		c.EligibleMinYears = 8
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Intake.ApplicationFormURL == "" {
		return fmt.Errorf("intake.application_form_url is required")
	}
	if u, err := url.Parse(cfg.Intake.ApplicationFormURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("intake.application_form_url must be an absolute URL")
	}

	p := cfg.Intake.Player
	if p.MinAge > p.WarnAboveAge || p.WarnAboveAge > p.MaxAge {
		return fmt.Errorf("intake.player age bounds must satisfy min_age <= warn_above_age <= max_age")
	}
	if p.EligibleMinAge > p.EligibleMaxAge || p.EligibleMinYears > p.EligibleMaxYears {
		return fmt.Errorf("intake.player eligibility ranges are inverted")
	}

	switch cfg.Advisory.Provider {
	case "gemini", "anthropic":
	case "gateway":
		if cfg.Advisory.BaseURL == "" {
			return fmt.Errorf("advisory.base_url is required for the gateway provider")
		}
	default:
		return fmt.Errorf("advisory.provider %q is not supported", cfg.Advisory.Provider)
	}

	switch cfg.Session.Store {
	case "memory":
	case "redis":
		if !cfg.Database.Redis.Enabled || cfg.Database.Redis.Address == "" {
			return fmt.Errorf("session.store=redis requires database.redis.enabled and database.redis.address")
		}
	default:
		return fmt.Errorf("session.store %q is not supported", cfg.Session.Store)
	}

	if cfg.Database.Postgres.Enabled {
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	}
	if cfg.Database.Redis.Enabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	return nil
}
