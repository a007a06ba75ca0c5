package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/cli/output"
	"github.com/steviee/go-ore/internal/state"
	"gopkg.in/yaml.v3"
)

// NewValidateCommand creates the config validate subcommand
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		Long: `Parse and validate the configuration file without changing it.

A missing file is valid since the defaults apply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := output.IsJSON(cmd)

			path, err := configPath(cmd)
			if err != nil {
				return output.WriteError(cmd.OutOrStdout(), jsonMode, err)
			}

			if err := validateFile(path); err != nil {
				return output.WriteError(cmd.OutOrStdout(), jsonMode, fmt.Errorf("%s: %w", path, err))
			}

			if jsonMode {
				return output.WriteJSON(cmd.OutOrStdout(), map[string]any{"path": path, "valid": true})
			}
			if !output.IsQuiet(cmd) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
			}
			return nil
		},
	}
}

// validateFile checks path the way LoadConfigFile reads it, but never
// rewrites a corrupted file.
func validateFile(path string) error {
	//nolint:gosec // G304: config path is chosen by the user
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	cfg := state.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	return state.ValidateConfig(cfg)
}
