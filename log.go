package trellis

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger receives the engine's debug output. It is silent until SetLogger or
// Scene.SetDebugMode installs a real one.
var logger = log.New(io.Discard)

// SetLogger routes trellis logging to l. Passing nil silences it again.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Logger returns the logger trellis currently writes to.
func Logger() *log.Logger {
	return logger
}

// NewLogger creates a logger with the timestamp format used across trellis
// tooling. Messages below level are dropped.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "trellis",
	})
}

func newDebugLogger() *log.Logger {
	return NewLogger(os.Stderr, log.DebugLevel)
}
