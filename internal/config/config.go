// Package config provides configuration management for wbpeek.
// It loads configuration from environment variables, overridden by
// command-line flags bound to the same viper instance, with sensible defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Verbosity represents the output verbosity level
type Verbosity string

const (
	// VerbosityNormal shows only essential output
	VerbosityNormal Verbosity = "normal"
	// VerbosityVerbose includes request logging
	VerbosityVerbose Verbosity = "verbose"
	// VerbosityDebug provides full debug logging and strict feed checks
	VerbosityDebug Verbosity = "debug"
)

// Viper keys
const (
	KeyEntity       = "entity"
	KeyProject      = "project"
	KeyAPIKey       = "api_key"
	KeyBaseURL      = "base_url"
	KeyTimeout      = "timeout"
	KeyRetryTimeout = "retry_timeout"
	KeyPageSize     = "page_size"
	KeyVerbosity    = "verbosity"
)

const (
	// DefaultBaseURL is the hosted W&B API
	DefaultBaseURL = "https://api.wandb.ai"

	defaultTimeout      = 30
	defaultRetryTimeout = 20
	defaultPageSize     = 50
	maxPageSize         = 1000
)

// envBindings maps viper keys to the environment variables that feed them.
var envBindings = map[string]string{
	KeyEntity:       "WANDB_ENTITY",
	KeyProject:      "WANDB_PROJECT",
	KeyAPIKey:       "WANDB_API_KEY",
	KeyBaseURL:      "WANDB_BASE_URL",
	KeyTimeout:      "WBPEEK_TIMEOUT",
	KeyRetryTimeout: "WBPEEK_RETRY_TIMEOUT",
	KeyPageSize:     "WBPEEK_PAGE_SIZE",
	KeyVerbosity:    "WBPEEK_VERBOSITY",
}

// APIConfig holds tracking-service client configuration
type APIConfig struct {
	// Key is the API key sent with every request
	Key string

	// BaseURL is the API endpoint, without the /graphql suffix
	BaseURL string

	// AppURL is the web UI root used to build run links
	AppURL string

	// Timeout bounds a single HTTP request
	Timeout time.Duration

	// RetryTimeout bounds retries of transient failures; zero disables retries
	RetryTimeout time.Duration

	// PageSize is the number of runs requested per page
	PageSize int
}

// Config holds all configuration for the wbpeek CLI
type Config struct {
	// Entity is the W&B user or team that owns the project
	Entity string

	// Project is the W&B project to inspect
	Project string

	// Verbosity controls output level
	Verbosity Verbosity

	// API holds client configuration
	API APIConfig
}

// NewViper returns a viper instance with environment bindings and defaults.
// Callers bind command-line flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyVerbosity, string(VerbosityNormal))
	return v
}

// New creates a new Config instance from environment variables
func New() (*Config, error) {
	return Load(NewViper())
}

// Load builds a Config from v. All validation failures are reported together.
func Load(v *viper.Viper) (*Config, error) {
	var errs error

	cfg := &Config{
		Entity:  strings.TrimSpace(v.GetString(KeyEntity)),
		Project: strings.TrimSpace(v.GetString(KeyProject)),
	}

	if cfg.Entity == "" {
		errs = multierr.Append(errs, errors.New("entity is required: set --entity or WANDB_ENTITY"))
	}
	if cfg.Project == "" {
		errs = multierr.Append(errs, errors.New("project is required: set --project or WANDB_PROJECT"))
	}

	// Load Verbosity - defaults to normal
	verbosity := Verbosity(strings.ToLower(v.GetString(KeyVerbosity)))
	switch verbosity {
	case "":
		cfg.Verbosity = VerbosityNormal
	case VerbosityNormal, VerbosityVerbose, VerbosityDebug:
		cfg.Verbosity = verbosity
	default:
		errs = multierr.Append(errs, fmt.Errorf("WBPEEK_VERBOSITY must be one of: normal, verbose, debug; got: %s", verbosity))
	}

	// Load API key - required
	cfg.API.Key = strings.TrimSpace(v.GetString(KeyAPIKey))
	if cfg.API.Key == "" {
		errs = multierr.Append(errs, errors.New("WANDB_API_KEY is required"))
	}

	// Load BaseURL - defaults to the hosted service
	baseURL, err := parseBaseURL(v.GetString(KeyBaseURL))
	if err != nil {
		errs = multierr.Append(errs, err)
	} else {
		cfg.API.BaseURL = baseURL
		cfg.API.AppURL = appURL(baseURL)
	}

	// Load Timeout - defaults to 30 seconds
	timeout, err := parseSeconds(v.GetString(KeyTimeout), "WBPEEK_TIMEOUT", defaultTimeout, false)
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	cfg.API.Timeout = timeout

	// Load RetryTimeout - defaults to 20 seconds, zero disables retries
	retryTimeout, err := parseSeconds(v.GetString(KeyRetryTimeout), "WBPEEK_RETRY_TIMEOUT", defaultRetryTimeout, true)
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	cfg.API.RetryTimeout = retryTimeout

	// Load PageSize - defaults to 50
	pageSize, err := parsePageSize(v.GetString(KeyPageSize))
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	cfg.API.PageSize = pageSize

	if errs != nil {
		return nil, errs
	}
	return cfg, nil
}

// IsVerbose returns true if verbosity is verbose or debug
func (c *Config) IsVerbose() bool {
	return c.Verbosity == VerbosityVerbose || c.Verbosity == VerbosityDebug
}

// IsDebug returns true if verbosity is debug
func (c *Config) IsDebug() bool {
	return c.Verbosity == VerbosityDebug
}

// parseBaseURL validates an http(s) URL and strips any trailing slash
func parseBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultBaseURL, nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("WANDB_BASE_URL must be an http(s) URL, got: %s", raw)
	}
	return strings.TrimSuffix(raw, "/"), nil
}

// appURL derives the web UI root from the API URL: the hosted API lives on an
// "api." subdomain, self-hosted servers serve both from one host.
func appURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	u.Host = strings.TrimPrefix(u.Host, "api.")
	return strings.TrimSuffix(u.String(), "/")
}

// parseSeconds parses a whole number of seconds with a default value
func parseSeconds(value, name string, defaultSecs int, allowZero bool) (time.Duration, error) {
	if value == "" {
		return time.Duration(defaultSecs) * time.Second, nil
	}
	secs, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return time.Duration(defaultSecs) * time.Second, fmt.Errorf("invalid %s: %w", name, err)
	}
	if secs < 0 || (secs == 0 && !allowZero) {
		return time.Duration(defaultSecs) * time.Second, fmt.Errorf("%s must be positive, got: %d", name, secs)
	}
	return time.Duration(secs) * time.Second, nil
}

// parsePageSize parses and validates the run page size
func parsePageSize(value string) (int, error) {
	if value == "" {
		return defaultPageSize, nil
	}
	size, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultPageSize, fmt.Errorf("invalid WBPEEK_PAGE_SIZE: %s", value)
	}
	if size < 1 || size > maxPageSize {
		return defaultPageSize, fmt.Errorf("WBPEEK_PAGE_SIZE must be between 1 and %d, got: %d", maxPageSize, size)
	}
	return size, nil
}
