package config

import (
	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/state"
)

// NewCommand creates the config command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and create go-ore configuration settings.

Configuration is stored in ~/.config/go-ore/config.yaml by default
(honouring XDG_CONFIG_HOME) or in the file given with --config. Every
key can be overridden with a GOORE_ environment variable, for example
GOORE_API_BASE_URL or GOORE_SEARCH_LIMIT. A .env file in the working
directory is loaded first.`,
		Example: `  # View effective configuration
  go-ore config show

  # View only what is stored in the file
  go-ore config show --file

  # Show configuration file path
  go-ore config path

  # Write a default config file
  go-ore config init

  # Check the config file for errors
  go-ore config validate`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(NewShowCommand())
	cmd.AddCommand(NewPathCommand())
	cmd.AddCommand(NewInitCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}

// configPath returns the file named by the inherited --config flag, or the
// default location.
func configPath(cmd *cobra.Command) (string, error) {
	if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
		return path, nil
	}
	return state.GetConfigPath()
}
