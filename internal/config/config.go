// Package config provides configuration management for the keiba analysis pipeline.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Extraction ExtractionConfig `mapstructure:"extraction" validate:"required"`
	Features   FeaturesConfig   `mapstructure:"features" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Output     OutputConfig     `mapstructure:"output" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents the JV-Data mirror connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// ExtractionConfig controls the record extraction stage
type ExtractionConfig struct {
	YearFrom           int     `mapstructure:"year_from" validate:"required,min=1986"`
	YearTo             int     `mapstructure:"year_to" validate:"required,min=1986"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	PedigreeChunkSize  int     `mapstructure:"pedigree_chunk_size" validate:"required,gt=0"`
	PedigreeCacheTTL   int     `mapstructure:"pedigree_cache_ttl_seconds" validate:"required,gt=0"`
}

// FeaturesConfig holds the minimum-sample thresholds of the ROI groupers
type FeaturesConfig struct {
	MinSireRaces   int `mapstructure:"min_sire_races" validate:"required,gt=0"`
	MinJockeyRides int `mapstructure:"min_jockey_rides" validate:"required,gt=0"`
	MinHorseRaces  int `mapstructure:"min_horse_races" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// OutputConfig controls where and how feature tables are written
type OutputConfig struct {
	Dir    string `mapstructure:"dir" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=csv json both"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
