package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/logging"
)

// NewLogger creates the application logger. Level precedence:
//  1. --log-level
//  2. -v/--verbose (debug)
//  3. -q/--quiet (warn)
//  4. LOG_LEVEL
//  5. info
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:      level,
		Format:     config.LogFormat,
		Output:     config.LogOutput,
		TimeFormat: "kitchen",
		NoColor:    config.NoColor,
		AddCaller:  level == "debug" || level == "trace",
	})
}

func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		return validateLogLevel(config.LogLevel)
	}
	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}
	if config.EnvLogLevel != "" {
		return validateLogLevel(config.EnvLogLevel)
	}
	return "info"
}

func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	}
	fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", level, "info")
	return "info"
}
