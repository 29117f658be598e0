// Package logger configures the process-wide zerolog logger. Components that
// need a scoped logger take a zerolog.Logger in their constructor; the
// package-level helpers exist for code that runs before wiring is done.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats accepted by Configure.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Configure sets the global log level and output format. Unknown levels fall
// back to info, unknown formats to JSON.
func Configure(level, format string) {
	zerolog.TimeFieldFormat = time.RFC3339

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)

	logger := zerolog.New(os.Stdout)
	if format == FormatConsole {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	log.Logger = logger.With().Timestamp().Logger()
}

// Debug starts a debug-level event on the global logger
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info starts an info-level event on the global logger
func Info() *zerolog.Event {
	return log.Info()
}

// Warn starts a warn-level event on the global logger
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error starts an error-level event on the global logger
func Error() *zerolog.Event {
	return log.Error()
}

// Fatal starts a fatal-level event on the global logger and exits
func Fatal() *zerolog.Event {
	return log.Fatal()
}

func init() {
	Configure("info", FormatConsole)
}
