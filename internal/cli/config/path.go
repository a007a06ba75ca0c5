package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/cli/output"
)

// NewPathCommand creates the config path subcommand
func NewPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := output.IsJSON(cmd)

			path, err := configPath(cmd)
			if err != nil {
				return output.WriteError(cmd.OutOrStdout(), jsonMode, err)
			}

			_, statErr := os.Stat(path)
			exists := statErr == nil
			if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
				return output.WriteError(cmd.OutOrStdout(), jsonMode, fmt.Errorf("stat config file: %w", statErr))
			}

			if jsonMode {
				return output.WriteJSON(cmd.OutOrStdout(), map[string]any{
					"path":   path,
					"exists": exists,
				})
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
