// Package logger configures the global zerolog logger for the CLI.
package logger

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Init sets up the global logger: console output on stderr and a level
// derived from the verbosity counter. 0 keeps the CLI surface quiet (warn
// and above), each --verbose lowers the threshold, --quiet raises it to
// errors only.
func Init(verbosity int) {
	// A .env next to the binary may carry gateway and wallet overrides.
	// Absence is the normal case.
	_ = godotenv.Load()

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	level := zerolog.WarnLevel
	switch {
	case verbosity < 0:
		level = zerolog.ErrorLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	case verbosity == 2:
		level = zerolog.DebugLevel
	case verbosity > 2:
		level = zerolog.TraceLevel
	}
	zerolog.SetGlobalLevel(level)

	if level <= zerolog.DebugLevel {
		log.Debug().Str("level", level.String()).Msg("Verbose logging enabled")
	}
}
