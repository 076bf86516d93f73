// Package logging provides structured logging for bit using zerolog.
// Terminals get a console writer, pipes and CI get JSON lines.
//
//	log := logging.FromContext(ctx)
//	log.Info().Str("category", "crypto").Int("count", n).Msg("Wrote category file")
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger serves packages that run without a context logger.
var defaultLogger = NewLoggerFromConfig(configFromEnv())

// Default returns the process wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process wide logger, including zerolog's
// global log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
