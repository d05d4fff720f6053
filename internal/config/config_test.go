package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/shapegen/internal/shapes"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shapegen.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	types, err := cfg.ShapeTypes()
	require.NoError(t, err)
	assert.Equal(t, []shapes.ShapeType{shapes.Circle, shapes.Triangle, shapes.Rectangle}, types)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[generate]
shapes = ["star", "square"]
nominal_size = 200
canvas_size = 256
seed = 99
count = 3
preview = true

[classes]
star = 10
square = 11
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 200, cfg.Generate.NominalSize)
	assert.Equal(t, 256, cfg.Generate.CanvasSize)
	assert.Equal(t, uint64(99), cfg.Generate.Seed)
	assert.True(t, cfg.Generate.Preview)
	assert.Equal(t, 4, cfg.Generate.Workers, "unset keys keep defaults")

	table, err := cfg.ClassTable()
	require.NoError(t, err)
	id, err := table.ClassID(shapes.Star)
	require.NoError(t, err)
	assert.Equal(t, 10, id)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[generate]\nnominal_size = \"big\"\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[generate]\ncolour = 1\n"))
	assert.ErrorContains(t, err, "unknown config key")
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero size", func(c *Config) { c.Generate.NominalSize = 0 }},
		{"negative canvas", func(c *Config) { c.Generate.CanvasSize = -1 }},
		{"negative count", func(c *Config) { c.Generate.Count = -1 }},
		{"inverted range", func(c *Config) { c.Generate.MinShapes = 4; c.Generate.MaxShapes = 2 }},
		{"no workers", func(c *Config) { c.Generate.Workers = 0 }},
		{"unknown shape", func(c *Config) { c.Generate.Shapes = []string{"hexagon"} }},
		{"no shapes", func(c *Config) { c.Generate.Shapes = nil }},
		{"shape missing from classes", func(c *Config) { c.Classes = map[string]int{"circle": 1} }},
		{"duplicate class ids", func(c *Config) {
			c.Classes = map[string]int{"circle": 1, "triangle": 1, "rectangle": 2}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSeed, "1234")
	t.Setenv(EnvOutput, "/tmp/out")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, uint64(1234), cfg.Generate.Seed)
	assert.Equal(t, "/tmp/out", cfg.Generate.Output)

	t.Setenv(EnvSeed, "abc")
	assert.Error(t, Default().ApplyEnv())
}
