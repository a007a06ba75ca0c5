package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/steviee/go-ore/internal/cli/config"
	"github.com/steviee/go-ore/internal/cli/plugins"
	"github.com/steviee/go-ore/internal/state"
)

// EnvPrefix is the prefix of environment variables that override config
// keys, e.g. GOORE_API_BASE_URL for api.base_url.
const EnvPrefix = "GOORE"

var (
	// Global flags
	cfgFile string
	jsonOut bool
	quiet   bool
	verbose bool

	// Global logger
	logger *slog.Logger

	// Effective settings after file, env and defaults are merged
	settings *state.Config
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date, builtBy string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go-ore",
		Short: "Search the Ore plugin repository",
		Long: `go-ore is a CLI tool for browsing plugins published on Ore,
the Sponge plugin repository.

It provides a simple, read-only interface for:
  - Searching plugins by term, category and sort order
  - Paging through results with limit and offset
  - Listing the known categories and sort orders
  - Browsing results interactively in the terminal

Settings are read from ~/.config/go-ore/config.yaml and can be
overridden with GOORE_* environment variables.`,
		Example: `  # Search for a plugin
  go-ore plugins search nucleus

  # Search economy plugins, most downloaded first
  go-ore plugins search --category economy --sort most-downloads

  # Browse results interactively
  go-ore plugins browse worldedit

  # Write a default config file
  go-ore config init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize logger based on flags
			if err := initLogger(cmd.ErrOrStderr(), slog.LevelInfo); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			// Initialize config
			if err := initConfig(); err != nil {
				logger.Error("failed to initialize config", "error", err)
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			// Re-initialize with the configured level now that it is known
			level, err := state.ParseLogLevel(settings.Logging.Level)
			if err != nil {
				return err
			}
			if err := initLogger(cmd.ErrOrStderr(), level); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			cmd.SetContext(state.WithConfig(cmd.Context(), settings))
			return nil
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/go-ore/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	// Mark json and quiet as mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewVersionCommand(version, commit, date, builtBy))
	rootCmd.AddCommand(NewPluginsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// NewPluginsCommand creates the plugins command group
func NewPluginsCommand() *cobra.Command {
	return plugins.NewCommand()
}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	return config.NewCommand()
}

// initLogger initializes the global logger. The --quiet and --verbose
// flags take precedence over the configured level.
func initLogger(out io.Writer, configured slog.Level) error {
	var handler slog.Handler

	level := configured
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if out == nil {
		out = os.Stderr
	}

	if jsonOut {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

// initConfig merges defaults, the config file and GOORE_* environment
// variables into settings.
func initConfig() error {
	v := viper.New()
	setDefaults(v, state.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		v.SetConfigFile(cfgFile)
	} else {
		configDir, err := state.GetConfigDir()
		if err != nil {
			return fmt.Errorf("get config directory: %w", err)
		}
		v.AddConfigPath(configDir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// If a config file is found, read it in
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Debug("using config file", "path", v.ConfigFileUsed())
	}

	cfg := &state.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if err := state.ValidateConfig(cfg); err != nil {
		return err
	}

	settings = cfg
	return nil
}

func setDefaults(v *viper.Viper, d *state.Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.user_agent", d.API.UserAgent)
	v.SetDefault("search.limit", d.Search.Limit)
	v.SetDefault("search.sort", d.Search.Sort)
	v.SetDefault("search.categories", d.Search.Categories)
	v.SetDefault("output.size_format", d.Output.SizeFormat)
	v.SetDefault("logging.level", d.Logging.Level)
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}
