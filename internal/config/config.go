package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type Config struct {
	BaseURL             string              `yaml:"base_url"`
	Crawl               CrawlConfig         `yaml:"crawl"`
	HTTP                HTTPConfig          `yaml:"http"`
	RobotsCacheTTLHours int                 `yaml:"robots_cache_ttl_hours"`
	SelectorsFile       string              `yaml:"selectors_file"`
	Output              OutputConfig        `yaml:"output"`
	Observability       ObservabilityConfig `yaml:"observability"`
}

type CrawlConfig struct {
	WindowDays int    `yaml:"window_days"`
	StartPage  int    `yaml:"start_page"`
	Sort       string `yaml:"sort"`
}

type HTTPConfig struct {
	UserAgent        string `yaml:"user_agent"`
	AcceptLanguage   string `yaml:"accept_language"`
	ConnectTimeoutMS int    `yaml:"connect_timeout_ms"`
	TotalTimeoutMS   int    `yaml:"total_timeout_ms"`
	RPM              int    `yaml:"rpm"`
}

type OutputConfig struct {
	Driver           string `yaml:"driver"`
	Path             string `yaml:"path"`
	DSN              string `yaml:"dsn"`
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// Validation
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Crawl.WindowDays <= 0 {
		return fmt.Errorf("crawl.window_days must be > 0")
	}
	if c.Crawl.StartPage < 1 {
		return fmt.Errorf("crawl.start_page must be >= 1")
	}
	if c.Crawl.Sort == "" {
		return fmt.Errorf("crawl.sort is required")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.ConnectTimeoutMS <= 0 {
		return fmt.Errorf("http.connect_timeout_ms must be > 0")
	}
	if c.HTTP.TotalTimeoutMS <= 0 {
		return fmt.Errorf("http.total_timeout_ms must be > 0")
	}
	if c.HTTP.RPM <= 0 {
		return fmt.Errorf("http.rpm must be > 0")
	}
	if c.Output.Driver != "csv" && c.Output.Driver != "sqlite" {
		return fmt.Errorf("output.driver must be 'csv' or 'sqlite'")
	}
	if c.Output.Driver == "csv" && c.Output.Path == "" {
		return fmt.Errorf("output.path is required for the csv driver")
	}
	if c.Output.Driver == "sqlite" {
		if c.Output.DSN == "" {
			return fmt.Errorf("output.dsn is required for the sqlite driver")
		}
		if c.Output.CommandTimeoutMS <= 0 {
			return fmt.Errorf("output.command_timeout_ms must be > 0")
		}
	}
	if c.Observability.LogPath == "" {
		return fmt.Errorf("observability.log_path is required")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	if c.RobotsCacheTTLHours <= 0 {
		return fmt.Errorf("robots_cache_ttl_hours must be > 0")
	}
	return nil
}

// PageURL builds the listing URL for a 1-based page number, carrying the
// fixed newest-first sort parameter.
func (c *Config) PageURL(page int) string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("sort", c.Crawl.Sort)
	return c.BaseURL + "?" + values.Encode()
}

// CutoffInstant is the point in time below which records are out of scope,
// computed once at startup and read-only for the rest of the run.
func (c *Config) CutoffInstant(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -c.Crawl.WindowDays)
}

// Getters
func (c *Config) GetConnectTimeout() time.Duration {
	return time.Duration(c.HTTP.ConnectTimeoutMS) * time.Millisecond
}

func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetCommandTimeout() time.Duration {
	return time.Duration(c.Output.CommandTimeoutMS) * time.Millisecond
}

func (c *Config) GetRobotsCacheTTL() time.Duration {
	return time.Duration(c.RobotsCacheTTLHours) * time.Hour
}
