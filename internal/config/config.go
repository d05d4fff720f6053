// Package config loads shapegen settings from TOML files and the environment.
//
// A config file looks like:
//
//	[generate]
//	shapes       = ["circle", "triangle", "rectangle"]
//	nominal_size = 100
//	canvas_size  = 100
//	seed         = 42
//	count        = 1000
//	min_shapes   = 1
//	max_shapes   = 5
//	workers      = 4
//	output       = "dataset"
//	preview      = true
//
//	[classes]
//	circle    = 1
//	triangle  = 2
//	rectangle = 3
//
// Every field is optional; Default fills the gaps. A [classes] table, when
// present, replaces the built-in class ids entirely.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/ironsheep/shapegen/internal/shapes"
)

// Environment variables that override file settings.
const (
	EnvSeed   = "SHAPEGEN_SEED"
	EnvOutput = "SHAPEGEN_OUTPUT"
)

// Generate holds scene and batch settings.
type Generate struct {
	Shapes       []string `toml:"shapes"`
	NominalSize  int      `toml:"nominal_size"`
	CanvasSize   int      `toml:"canvas_size"`
	Seed         uint64   `toml:"seed"`
	Count        int      `toml:"count"`
	MinShapes    int      `toml:"min_shapes"`
	MaxShapes    int      `toml:"max_shapes"`
	Workers      int      `toml:"workers"`
	Output       string   `toml:"output"`
	Preview      bool     `toml:"preview"`
	PreviewScale float64  `toml:"preview_scale"`
}

// Config is the root of a config file.
type Config struct {
	Generate Generate       `toml:"generate"`
	Classes  map[string]int `toml:"classes"`
}

// Default returns the built-in settings: the original three shapes at 100
// pixels on a 100 pixel canvas.
func Default() *Config {
	return &Config{
		Generate: Generate{
			Shapes:       []string{"circle", "triangle", "rectangle"},
			NominalSize:  100,
			CanvasSize:   100,
			Seed:         1,
			Count:        10,
			MinShapes:    1,
			MaxShapes:    5,
			Workers:      4,
			Output:       "dataset",
			PreviewScale: 1,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from SHAPEGEN_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		c.Generate.Seed = seed
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Generate.Output = v
	}
	return nil
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	g := c.Generate
	if g.NominalSize <= 0 {
		return fmt.Errorf("nominal_size must be positive, got %d", g.NominalSize)
	}
	if g.CanvasSize <= 0 {
		return fmt.Errorf("canvas_size must be positive, got %d", g.CanvasSize)
	}
	if g.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", g.Count)
	}
	if g.MinShapes < 0 || g.MaxShapes < g.MinShapes {
		return fmt.Errorf("invalid shape range min_shapes=%d max_shapes=%d", g.MinShapes, g.MaxShapes)
	}
	if g.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", g.Workers)
	}
	if g.PreviewScale < 0 {
		return fmt.Errorf("preview_scale must not be negative, got %g", g.PreviewScale)
	}

	table, err := c.ClassTable()
	if err != nil {
		return err
	}
	types, err := c.ShapeTypes()
	if err != nil {
		return err
	}
	if len(types) == 0 && g.MaxShapes > 0 {
		return fmt.Errorf("shapes must list at least one shape type")
	}
	for _, t := range types {
		if _, err := table.ClassID(t); err != nil {
			return err
		}
	}
	return nil
}

// ShapeTypes resolves the eligible shape names.
func (c *Config) ShapeTypes() ([]shapes.ShapeType, error) {
	return shapes.ParseShapeTypes(c.Generate.Shapes)
}

// ClassTable builds the class table from [classes], or returns the default
// table when the section is absent.
func (c *Config) ClassTable() (*shapes.ClassTable, error) {
	if len(c.Classes) == 0 {
		return shapes.DefaultClassTable(), nil
	}
	ids := make(map[shapes.ShapeType]int, len(c.Classes))
	for name, id := range c.Classes {
		t, err := shapes.ParseShapeType(name)
		if err != nil {
			return nil, fmt.Errorf("classes: %w", err)
		}
		ids[t] = id
	}
	table, err := shapes.NewClassTable(ids)
	if err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}
	return table, nil
}
