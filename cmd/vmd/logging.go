package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns a console logger on w whose level follows the -v count:
// errors only by default, then warnings, info and debug.
func newLogger(w io.Writer, verbosity int) zerolog.Logger {
	var level zerolog.Level
	switch verbosity {
	case 0:
		level = zerolog.ErrorLevel
	case 1:
		level = zerolog.WarnLevel
	case 2:
		level = zerolog.InfoLevel
	default:
		level = zerolog.DebugLevel
	}
	_, tty := terminalFd(w)
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !tty,
	}
	logger := zerolog.New(console).Level(level).With().Timestamp().Logger()
	if verbosity >= 3 {
		logger = logger.With().Caller().Logger()
	}
	return logger
}
