package logger

import (
	"os"
	"strings"
)

// Config holds logger configuration
type Config struct {
	Level  Level
	Format string // "console" or "json"
	Caller bool   // Include caller information
}

// ConfigFromEnv creates a logger configuration from environment variables.
// Without WBPEEK_LOG_LEVEL the level follows the CLI verbosity: normal logs
// only errors, verbose adds info, debug logs everything.
func ConfigFromEnv(verbosity string) *Config {
	cfg := &Config{
		Level:  levelForVerbosity(verbosity),
		Format: "console",
	}

	// Parse log level
	if levelStr := os.Getenv("WBPEEK_LOG_LEVEL"); levelStr != "" {
		cfg.Level = LevelFromString(levelStr)
	}

	// Parse format
	if format := os.Getenv("WBPEEK_LOG_FORMAT"); format != "" {
		cfg.Format = strings.ToLower(format)
	}

	// Parse caller flag
	cfg.Caller = os.Getenv("WBPEEK_LOG_CALLER") == "true"

	return cfg
}

// IsDevelopment returns true if the logger is configured for development mode
func (c *Config) IsDevelopment() bool {
	return c.Format != "json"
}

func levelForVerbosity(verbosity string) Level {
	switch verbosity {
	case "debug":
		return DebugLevel
	case "verbose":
		return InfoLevel
	default:
		return ErrorLevel
	}
}
