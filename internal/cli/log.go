package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// openLogFile tees the logger into a rotating file when --log-file is set.
func (c *CLI) openLogFile() error {
	if c.logFile == "" || c.closer != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.logFile), 0o755); err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	w := &lumberjack.Logger{
		Filename:   c.logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	c.closer = w
	c.Logger.SetOutput(io.MultiWriter(c.stderr, w))
	c.Logger.Debug("logging to file", "path", c.logFile)
	return nil
}
