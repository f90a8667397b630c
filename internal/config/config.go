package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	AMC        AMCConfig        `yaml:"amc" envconfig:"AMC"`
	Target     TargetConfig     `yaml:"target" envconfig:"TARGET"`
	HTTP       HTTPConfig       `yaml:"http" envconfig:"HTTP"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Validation ValidationConfig `yaml:"validation" envconfig:"VALIDATION"`
}

// AMCConfig identifies the asset management company being scraped.
type AMCConfig struct {
	Name           string `yaml:"name" envconfig:"NAME" validate:"required"`
	BaseURL        string `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	DisclosuresURL string `yaml:"disclosures_url" envconfig:"DISCLOSURES_URL" validate:"required,url"`
}

// TargetConfig selects the reporting period to download and the date used
// when a sheet carries no parseable reporting date.
type TargetConfig struct {
	Month                string `yaml:"month" envconfig:"MONTH" validate:"required"`
	Year                 string `yaml:"year" envconfig:"YEAR" validate:"required,len=4,numeric"`
	DefaultReportingDate string `yaml:"default_reporting_date" envconfig:"DEFAULT_REPORTING_DATE" validate:"required,datetime=2006-01-02"`
}

// HTTPConfig contains the network collaborator settings. No retry, no
// backoff: a timeout surfaces as a failed workflow step.
type HTTPConfig struct {
	PageTimeout       time.Duration `yaml:"page_timeout" envconfig:"PAGE_TIMEOUT" validate:"gt=0"`
	DownloadTimeout   time.Duration `yaml:"download_timeout" envconfig:"DOWNLOAD_TIMEOUT" validate:"gt=0"`
	UserAgent         string        `yaml:"user_agent" envconfig:"USER_AGENT" validate:"required"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND" validate:"gt=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ValidationConfig carries the data-quality thresholds. The tolerance band
// and the ISIN pattern are tuned to one filer's format, so they are
// parameters rather than constants.
type ValidationConfig struct {
	PortfolioSumMin float64 `yaml:"portfolio_sum_min" envconfig:"PORTFOLIO_SUM_MIN" validate:"gte=0"`
	PortfolioSumMax float64 `yaml:"portfolio_sum_max" envconfig:"PORTFOLIO_SUM_MAX" validate:"gtfield=PortfolioSumMin"`
	ISINPattern     string  `yaml:"isin_pattern" envconfig:"ISIN_PATTERN" validate:"required"`
}

// Load builds the configuration from defaults, an optional config.yaml, and
// MF_* environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := Default()

	if path := findConfigFile(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("MF", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// findConfigFile returns the first config file found in common locations,
// or "" when only defaults and env vars apply.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the default configuration, tuned for the Axis Mutual Fund
// statutory disclosures page.
func Default() *Config {
	return &Config{
		AMC: AMCConfig{
			Name:           "Axis Mutual Fund",
			BaseURL:        "https://www.axismf.com",
			DisclosuresURL: "https://www.axismf.com/statutory-disclosures",
		},
		Target: TargetConfig{
			Month:                "December",
			Year:                 "2025",
			DefaultReportingDate: "2025-12-31",
		},
		HTTP: HTTPConfig{
			PageTimeout:       30 * time.Second,
			DownloadTimeout:   60 * time.Second,
			UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			RequestsPerSecond: 1,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Validation: ValidationConfig{
			PortfolioSumMin: 95,
			PortfolioSumMax: 105,
			ISINPattern:     `^[A-Z]{2}[A-Z0-9]{9}[0-9]$`,
		},
	}
}
