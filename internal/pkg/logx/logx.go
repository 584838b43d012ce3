/*
Package logx provides a structured logging wrapper based on zerolog.

It initializes the process-wide logger, selects a console or JSON output depending on the
environment, and offers small helpers used by the HTTP layer and the signaling hub.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger initializes the global zerolog instance.
// Development: Debug level, human-readable console output on stderr.
// Production: Info level, JSON lines on stdout.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// Logger returns a pointer to the global zerolog.Logger instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Component returns a child of the global logger tagged with the given component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// checkFields drops a field list that is not made of key-value pairs, so zerolog does not panic.
func checkFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msg("logx call received an odd number of fields, fields ignored")
		return nil
	}
	return fields
}

// Info records a message at Info level with optional key-value fields.
func Info(msg string, fields ...any) {
	Logger().Info().
		Fields(checkFields("Info", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Warn records a message at Warn level with optional key-value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().
		Fields(checkFields("Warn", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Error records err at Error level with optional key-value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().
		Err(err).
		Fields(checkFields("Error", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Fatal records err at Fatal level and exits the process.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().
		Err(err).
		Fields(checkFields("Fatal", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}
