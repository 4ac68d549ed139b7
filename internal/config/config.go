// Package config provides configuration management for the application.
// It handles loading, validation, and access to configuration values from
// a yaml file and environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/unilab-kr/boardmap/internal/logger"
)

// Defaults. The discovery timeouts and user agent are deliberately fixed
// constants of the pipeline; the config file can raise the worker count
// or point at different seed/output paths.
const (
	defaultHomepageTimeout = 7 * time.Second
	defaultSitemapTimeout  = 5 * time.Second
	defaultWorkers         = 4
	defaultJobTimeout      = 30 * time.Second
	defaultBoardsPath      = "result/departments_boards.json"
	defaultReviewPath      = "result/manual_review_needed.json"
	defaultDepartmentsPath = "result/departments.json"
)

// HTTPConfig holds fetch settings.
type HTTPConfig struct {
	UserAgent       string        `yaml:"user_agent"`
	HomepageTimeout time.Duration `yaml:"homepage_timeout"`
	SitemapTimeout  time.Duration `yaml:"sitemap_timeout"`
}

// DiscoveryConfig holds discovery run settings.
type DiscoveryConfig struct {
	Workers    int           `yaml:"workers"`
	JobTimeout time.Duration `yaml:"job_timeout"`
}

// OutputConfig holds result file paths.
type OutputConfig struct {
	BoardsPath      string `yaml:"boards_path"`
	ReviewPath      string `yaml:"review_path"`
	DepartmentsPath string `yaml:"departments_path"`
}

// Config represents the application configuration.
type Config struct {
	Logger    logger.Config   `yaml:"logger"`
	HTTP      HTTPConfig      `yaml:"http"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	SeedPath  string          `yaml:"seed_path"`
	Output    OutputConfig    `yaml:"output"`
}

// WithDefaults returns a copy of the config with default values applied
// for zero-value fields.
func (c Config) WithDefaults() Config {
	if c.HTTP.HomepageTimeout <= 0 {
		c.HTTP.HomepageTimeout = defaultHomepageTimeout
	}
	if c.HTTP.SitemapTimeout <= 0 {
		c.HTTP.SitemapTimeout = defaultSitemapTimeout
	}
	if c.Discovery.Workers <= 0 {
		c.Discovery.Workers = defaultWorkers
	}
	if c.Discovery.JobTimeout <= 0 {
		c.Discovery.JobTimeout = defaultJobTimeout
	}
	if c.Output.BoardsPath == "" {
		c.Output.BoardsPath = defaultBoardsPath
	}
	if c.Output.ReviewPath == "" {
		c.Output.ReviewPath = defaultReviewPath
	}
	if c.Output.DepartmentsPath == "" {
		c.Output.DepartmentsPath = defaultDepartmentsPath
	}
	return c
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.HTTP.SitemapTimeout > c.HTTP.HomepageTimeout {
		return errors.New("sitemap timeout must not exceed homepage timeout")
	}
	if c.Discovery.Workers < 1 {
		return errors.New("discovery workers must be at least 1")
	}
	return nil
}

// Load builds the configuration from viper's current state (config file
// plus environment overrides) and applies defaults.
func Load() (*Config, error) {
	cfg := Config{
		Logger: logger.Config{
			Level:       logger.Level(strings.ToLower(viper.GetString("logger.level"))),
			Development: viper.GetBool("logger.development"),
			Encoding:    viper.GetString("logger.encoding"),
			OutputPaths: viper.GetStringSlice("logger.output_paths"),
		},
		HTTP: HTTPConfig{
			UserAgent:       viper.GetString("http.user_agent"),
			HomepageTimeout: viper.GetDuration("http.homepage_timeout"),
			SitemapTimeout:  viper.GetDuration("http.sitemap_timeout"),
		},
		Discovery: DiscoveryConfig{
			Workers:    viper.GetInt("discovery.workers"),
			JobTimeout: viper.GetDuration("discovery.job_timeout"),
		},
		SeedPath: viper.GetString("seed_path"),
		Output: OutputConfig{
			BoardsPath:      viper.GetString("output.boards_path"),
			ReviewPath:      viper.GetString("output.review_path"),
			DepartmentsPath: viper.GetString("output.departments_path"),
		},
	}.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
