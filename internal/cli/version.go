package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/cli/output"
	"github.com/steviee/go-ore/internal/ore"
)

// VersionInfo contains version information for the application
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	BuiltBy   string `json:"built_by"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	UserAgent string `json:"user_agent"`
}

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date, builtBy string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version information including build commit, date and the User-Agent sent to Ore.",
		Example: `  # Display version information
  go-ore version

  # Output in JSON format
  go-ore version --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(cmd.OutOrStdout(), newVersionInfo(version, commit, date, builtBy))
		},
	}

	return cmd
}

func newVersionInfo(version, commit, date, builtBy string) VersionInfo {
	userAgent := ore.UserAgent
	if settings != nil {
		userAgent = settings.API.UserAgent
	}

	return VersionInfo{
		Version:   version,
		Commit:    commit,
		Date:      date,
		BuiltBy:   builtBy,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		UserAgent: userAgent,
	}
}

// printVersion prints version information in the appropriate format
func printVersion(w io.Writer, info VersionInfo) error {
	if IsJSONOutput() {
		return output.WriteJSON(w, info)
	}

	lines := []struct{ format, value string }{
		{"go-ore version %s\n", info.Version},
		{"Commit: %s\n", info.Commit},
		{"Built: %s\n", info.Date},
		{"Built by: %s\n", info.BuiltBy},
		{"Go: %s\n", info.GoVersion},
		{"Platform: %s\n", info.Platform},
		{"User-Agent: %s\n", info.UserAgent},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, l.format, l.value); err != nil {
			return fmt.Errorf("write version: %w", err)
		}
	}

	return nil
}
