package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) configCommand() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}
			w := cmd.OutOrStdout()
			if !raw {
				source := "defaults"
				if c.configPath != "" {
					source = c.configPath
				}
				printHeader(w, "trellis configuration", "source: "+source+" + environment")
			}
			_, err = w.Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print only the YAML document")
	return cmd
}
