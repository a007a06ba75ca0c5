package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/steviee/go-ore/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// execute runs the config command group under a root carrying the global
// flags, with cfg as the effective settings.
func execute(t *testing.T, cfg *state.Config, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "go-ore", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().Bool("json", false, "")
	root.PersistentFlags().Bool("quiet", false, "")
	root.AddCommand(NewCommand())
	root.SetArgs(args)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.ExecuteContext(state.WithConfig(context.Background(), cfg))
	return out.String(), err
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand()

	assert.Equal(t, "config", cmd.Use)
	assert.Equal(t, "Manage configuration", cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)
	assert.Contains(t, cmd.Aliases, "cfg")

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"show", "path", "init", "validate"}, names)
}

func TestShow_Effective(t *testing.T) {
	cfg := state.DefaultConfig()
	cfg.Search.Limit = 7
	cfg.Search.Categories = []string{"chat"}

	out, err := execute(t, cfg, "config", "show")
	require.NoError(t, err)

	var got state.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, *cfg, got)
}

func TestShow_JSON(t *testing.T) {
	out, err := execute(t, state.DefaultConfig(), "config", "show", "--json")
	require.NoError(t, err)

	var env struct {
		Status string `json:"status"`
		Data   struct {
			API struct {
				BaseURL string `json:"base_url"`
				Timeout string `json:"timeout"`
			} `json:"api"`
			Search struct {
				Sort string `json:"sort"`
			} `json:"search"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "https://ore.spongepowered.org/api", env.Data.API.BaseURL)
	assert.Equal(t, "30s", env.Data.API.Timeout)
	assert.Equal(t, "recently-updated", env.Data.Search.Sort)
}

func TestShow_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ore.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  limit: 3\n"), 0644))

	out, err := execute(t, state.DefaultConfig(), "--config", path, "config", "show", "--file")
	require.NoError(t, err)

	var got state.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Search.Limit)
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	out, err := execute(t, state.DefaultConfig(), "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-test", "go-ore", "config.yaml")+"\n", out)

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(custom, []byte{}, 0644))

	out, err = execute(t, state.DefaultConfig(), "--config", custom, "config", "path", "--json")
	require.NoError(t, err)

	var env struct {
		Data struct {
			Path   string `json:"path"`
			Exists bool   `json:"exists"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.Equal(t, custom, env.Data.Path)
	assert.True(t, env.Data.Exists)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, state.DefaultConfig(), "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default configuration to "+path)

	loaded, err := state.LoadConfigFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, state.DefaultConfig(), loaded)

	// Second run refuses to overwrite
	_, err = execute(t, state.DefaultConfig(), "--config", path, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// --force overwrites
	require.NoError(t, os.WriteFile(path, []byte("search:\n  limit: 3\n"), 0644))
	_, err = execute(t, state.DefaultConfig(), "--config", path, "config", "init", "--force", "--quiet")
	require.NoError(t, err)

	loaded, err = state.LoadConfigFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 25, loaded.Search.Limit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		wantErr string
	}{
		{
			name:    "missing file is valid",
			content: nil,
		},
		{
			name:    "valid file",
			content: ptr("search:\n  sort: most-views\n  categories: [chat, Economy]\n"),
		},
		{
			name:    "invalid value",
			content: ptr("output:\n  size_format: kb\n"),
			wantErr: "invalid size format",
		},
		{
			name:    "corrupted file",
			content: ptr("api: [unterminated"),
			wantErr: "parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}

			out, err := execute(t, state.DefaultConfig(), "--config", path, "config", "validate")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				// The file must be left untouched
				data, readErr := os.ReadFile(path)
				require.NoError(t, readErr)
				assert.Equal(t, *tt.content, string(data))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "is valid")
		})
	}
}

func ptr(s string) *string {
	return &s
}
