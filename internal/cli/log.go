// Package cli implements the stackradar command-line interface.
//
// The CLI is built using cobra and reads its settings through viper from
// .stackradar.yaml, STACKRADAR_* environment variables and flags. Logging
// goes through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Compute entry positions and write them as JSON
//   - render: Generate SVG, PNG, PDF or JSON charts, optionally on every save
//   - inspect: Browse the settled placements in the terminal
//   - init: Write a starter chart definition
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so that long-running commands such as
// render --watch can report progress.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates the command logger. Timestamps carry hundredths of a
// second because a whole layout usually finishes within one.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command from start to finish.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the given key-value pairs and an elapsed field.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
