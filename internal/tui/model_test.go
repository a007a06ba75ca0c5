package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/steviee/go-ore/internal/ore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearch serves pages from a fixed result set and records requests.
type fakeSearch struct {
	all     []ore.Plugin
	limit   int
	err     error
	offsets []int
}

func (f *fakeSearch) search(_ context.Context, offset int) ([]ore.Plugin, error) {
	f.offsets = append(f.offsets, offset)
	if f.err != nil {
		return nil, f.err
	}
	if offset >= len(f.all) {
		return []ore.Plugin{}, nil
	}
	end := offset + f.limit
	if end > len(f.all) {
		end = len(f.all)
	}
	return f.all[offset:end], nil
}

func samplePlugins(n int) []ore.Plugin {
	plugins := make([]ore.Plugin, n)
	for i := range plugins {
		plugins[i] = ore.Plugin{
			PluginID:  fmt.Sprintf("plugin%d", i),
			Name:      fmt.Sprintf("Plugin %d", i),
			Owner:     "sponge",
			Category:  ore.CategoryChat,
			CreatedAt: time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC),
			Downloads: int64(100 * i),
			Stars:     int64(i),
			Recommended: ore.Version{
				Name:     "1.0.0",
				Channel:  ore.Channel{Name: "Release", Color: "#009600"},
				FileSize: 1500000,
				Dependencies: []ore.Dependency{
					{PluginID: "spongeapi", Version: "7.1.0"},
				},
			},
			Channels: []ore.Channel{
				{Name: "Release", Color: "#009600"},
				{Name: "Beta", Color: "#FFC800"},
			},
			Members: []ore.User{
				{UserID: 1, Name: "alice", Roles: []string{"Plugin_Owner"}, HeadRole: "Plugin_Owner"},
			},
		}
	}
	return plugins
}

func TestNewModel(t *testing.T) {
	f := &fakeSearch{limit: 10}
	model := NewModel(context.Background(), f.search, Options{Title: "nucleus", Limit: 10, Offset: 20})

	require.NotNil(t, model)
	assert.True(t, model.loading)
	assert.Empty(t, model.plugins)
	assert.Equal(t, 10, model.limit)
	assert.Equal(t, 20, model.offset)
	assert.Equal(t, 3, model.page())
	assert.Equal(t, "nucleus", model.title)
}

func TestNewModel_Defaults(t *testing.T) {
	model := NewModel(context.Background(), (&fakeSearch{}).search, Options{Limit: 0, Offset: -5})

	assert.Equal(t, ore.DefaultLimit, model.limit)
	assert.Equal(t, 0, model.offset)
	assert.Equal(t, 1, model.page())
}

func TestModel_Init_LoadsFirstPage(t *testing.T) {
	f := &fakeSearch{all: samplePlugins(3), limit: 10}
	model := NewModel(context.Background(), f.search, Options{Limit: 10})

	cmd := model.Init()
	require.NotNil(t, cmd)

	msg, ok := cmd().(pluginsLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, 0, msg.offset)
	assert.Len(t, msg.plugins, 3)
	assert.NoError(t, msg.err)
	assert.Equal(t, []int{0}, f.offsets)
}

func TestModel_Selected(t *testing.T) {
	model := NewModel(context.Background(), (&fakeSearch{}).search, Options{})

	_, ok := model.Selected()
	assert.False(t, ok)

	model.plugins = samplePlugins(2)
	model.selectedIdx = 1
	p, ok := model.Selected()
	require.True(t, ok)
	assert.Equal(t, "plugin1", p.PluginID)
}

func TestModel_HasNextPage(t *testing.T) {
	model := NewModel(context.Background(), (&fakeSearch{}).search, Options{Limit: 2})

	model.plugins = samplePlugins(1)
	assert.False(t, model.hasNextPage())

	model.plugins = samplePlugins(2)
	assert.True(t, model.hasNextPage())
}
