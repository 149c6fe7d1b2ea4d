package config

import (
	"fmt"
	"time"
)

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Intake        IntakeConfig        `mapstructure:"intake"`
	Advisory      AdvisoryConfig      `mapstructure:"advisory"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Session       SessionConfig       `mapstructure:"session"`
	Members       MembersConfig       `mapstructure:"members"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// IntakeConfig carries the recruitment thresholds and the follow-up form link.
type IntakeConfig struct {
	ApplicationFormURL string           `mapstructure:"application_form_url"`
	PathwaysFile       string           `mapstructure:"pathways_file"`
	Player             PlayerThresholds `mapstructure:"player"`
	Coach              CoachThresholds  `mapstructure:"coach"`
}

// PlayerThresholds holds validation (Min/Max/Warn*) and eligibility (Eligible*) bounds.
type PlayerThresholds struct {
	MinAge              int `mapstructure:"min_age"`
	MaxAge              int `mapstructure:"max_age"`
	WarnAboveAge        int `mapstructure:"warn_above_age"`
	MaxYearsPlayed      int `mapstructure:"max_years_played"`
	WarnBelowYears      int `mapstructure:"warn_below_years"`
	EligibleMinAge      int `mapstructure:"eligible_min_age"`
	EligibleMaxAge      int `mapstructure:"eligible_max_age"`
	EligibleMinYears    int `mapstructure:"eligible_min_years"`
	EligibleMaxYears    int `mapstructure:"eligible_max_years"`
	MinPace             int `mapstructure:"min_pace"`
	MaxPace             int `mapstructure:"max_pace"`
	MinPhysicalLength   int `mapstructure:"min_physical_length"`
	MinAchievementsSize int `mapstructure:"min_achievements_length"`
}

type CoachThresholds struct {
	MinAge           int `mapstructure:"min_age"`
	WarnAboveAge     int `mapstructure:"warn_above_age"`
	MinYears         int `mapstructure:"min_years"`
	WarnAboveYears   int `mapstructure:"warn_above_years"`
	EligibleMinAge   int `mapstructure:"eligible_min_age"`
	EligibleMinYears int `mapstructure:"eligible_min_years"`
}

type AdvisoryConfig struct {
	Provider     string  `mapstructure:"provider"` // gemini | anthropic | gateway
	Model        string  `mapstructure:"model"`
	APIKey       string  `mapstructure:"api_key"`
	BaseURL      string  `mapstructure:"base_url"`
	Temperature  float64 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	Timeout      int     `mapstructure:"timeout"` // milliseconds
	MaxRetries   int     `mapstructure:"max_retries"`
	HistoryLimit int     `mapstructure:"history_limit"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SessionConfig struct {
	Store string `mapstructure:"store"` // memory | redis
	TTL   int    `mapstructure:"ttl"`   // seconds
}

type MembersConfig struct {
	CacheTTL int `mapstructure:"cache_ttl"` // seconds
}

type ObservabilityConfig struct {
	MetricsEnabled bool `mapstructure:"metrics_enabled"`
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetSeconds converts seconds from config to time.Duration.
func GetSeconds(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
