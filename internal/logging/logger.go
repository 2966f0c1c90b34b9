package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init sets the global level and writes human-readable logs to stderr.
// level is one of debug, info, warn, error; anything else means info.
func Init(level string) {
	zerolog.SetGlobalLevel(Level(level))
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func Level(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
