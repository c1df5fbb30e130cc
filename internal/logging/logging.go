// logging
//
// Thin wrapper over zerolog so that a single call can be silenced with
// guaranteed restore semantics, which the transition engine relies on
// for --silent handling.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

// New returns a console logger writing to w at info level.
func New(w io.Writer) *Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return &Logger{zl: zerolog.New(cw).Level(zerolog.InfoLevel).With().Timestamp().Logger()}
}

// NewDiscard returns a logger that drops everything, for tests.
func NewDiscard() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Verbose(on bool) *Logger {
	if on {
		l.zl = l.zl.Level(zerolog.DebugLevel)
	}
	return l
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

// Silently runs fn with all output disabled and restores the previous
// level afterwards regardless of outcome. When silent is false it is a
// plain passthrough.
func (l *Logger) Silently(silent bool, fn func() error) error {
	if !silent {
		return fn()
	}
	prev := l.zl
	l.zl = l.zl.Level(zerolog.Disabled)
	defer func() { l.zl = prev }()
	return fn()
}
