package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/cli/output"
	"github.com/steviee/go-ore/internal/state"
	"gopkg.in/yaml.v3"
)

var showFile bool

// NewShowCommand creates the config show subcommand
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show configuration",
		Long: `Show the effective configuration, after defaults, the config file and
GOORE_ environment variables have been merged.

With --file only the contents of the config file are shown. A corrupted
file is moved aside to <path>.corrupted and replaced with defaults.`,
		Example: `  go-ore config show
  go-ore config show --file --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonMode := output.IsJSON(cmd)

			cfg := state.ConfigFromContext(cmd.Context())
			if showFile {
				path, err := configPath(cmd)
				if err != nil {
					return output.WriteError(cmd.OutOrStdout(), jsonMode, err)
				}
				cfg, err = state.LoadConfigFile(cmd.Context(), path)
				if err != nil {
					return output.WriteError(cmd.OutOrStdout(), jsonMode, err)
				}
			}

			return printConfig(cmd.OutOrStdout(), cfg, jsonMode)
		},
	}

	cmd.Flags().BoolVar(&showFile, "file", false, "show the config file instead of the effective settings")

	return cmd
}

// printConfig writes cfg as YAML, or as a JSON envelope in JSON mode
func printConfig(w io.Writer, cfg *state.Config, jsonMode bool) error {
	if jsonMode {
		return output.WriteJSON(w, configJSON(cfg))
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// configJSON mirrors the YAML layout so both outputs use the same keys.
func configJSON(cfg *state.Config) map[string]any {
	return map[string]any{
		"api": map[string]any{
			"base_url":   cfg.API.BaseURL,
			"timeout":    cfg.API.Timeout.String(),
			"user_agent": cfg.API.UserAgent,
		},
		"search": map[string]any{
			"limit":      cfg.Search.Limit,
			"sort":       cfg.Search.Sort,
			"categories": cfg.Search.Categories,
		},
		"output": map[string]any{
			"size_format": cfg.Output.SizeFormat,
		},
		"logging": map[string]any{
			"level": cfg.Logging.Level,
		},
	}
}
