package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/cli/output"
	"github.com/steviee/go-ore/internal/state"
)

var initForce bool

// NewInitCommand creates the config init subcommand
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a configuration file holding the default settings.

An existing file is left alone unless --force is given.`,
		Example: `  go-ore config init
  go-ore config init --force
  go-ore --config ./ore.yaml config init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := output.IsJSON(cmd)

			path, err := configPath(cmd)
			if err != nil {
				return output.WriteError(cmd.OutOrStdout(), jsonMode, err)
			}

			if _, err := os.Stat(path); err == nil && !initForce {
				return output.WriteError(cmd.OutOrStdout(), jsonMode,
					fmt.Errorf("config file %s already exists (use --force to overwrite)", path))
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return output.WriteError(cmd.OutOrStdout(), jsonMode, fmt.Errorf("stat config file: %w", err))
			}

			if err := state.WriteConfigFile(cmd.Context(), path, state.DefaultConfig()); err != nil {
				return output.WriteError(cmd.OutOrStdout(), jsonMode, err)
			}

			slog.Debug("wrote default config", "path", path)

			if jsonMode {
				return output.WriteJSON(cmd.OutOrStdout(), map[string]any{"path": path})
			}
			if !output.IsQuiet(cmd) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")

	return cmd
}
