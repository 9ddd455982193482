// Package cli implements the trellis command-line interface.
//
// The demo command opens an Ebitengine window with a sortable list, drop
// zones and an anchored popup. The config command prints the effective
// configuration after file and environment overrides.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --log-file for a rotating log file next to stderr.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/trellis"
)

const appName = "trellis"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stderr     io.Writer
	logFile    string
	configPath string
	closer     io.Closer
}

// New creates a CLI whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), stderr: w}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Trellis is a drag-and-drop region engine for Ebitengine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.openLogFile()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.Close()
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "also write logs to this file, rotated at 10 MB")

	root.AddCommand(c.demoCommand())
	root.AddCommand(c.configCommand())
	return root
}

// loadConfig returns the defaults, or the --config file merged over them.
// Environment overrides apply in both cases.
func (c *CLI) loadConfig() (trellis.Config, error) {
	if c.configPath == "" {
		return trellis.ParseConfig(nil, "yaml")
	}
	cfg, err := trellis.LoadConfig(c.configPath)
	if err != nil {
		return trellis.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return cfg, nil
}

// Close flushes and closes the log file, if one is open.
func (c *CLI) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	c.Logger.SetOutput(c.stderr)
	return err
}
