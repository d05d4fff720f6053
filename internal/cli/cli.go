// Package cli implements the shapegen command-line interface.
//
// # Commands
//
//   - generate: Write a dataset of labeled scenes to disk
//   - serve: Run the MCP server on stdio
//   - types: Print the shape types and their class ids
//   - inspect: Verify stored samples against their metadata
//
// Commands that build scenes read an optional TOML config (--config) and the
// SHAPEGEN_* environment. Command flags override both.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/shapegen/internal/config"
)

const (
	appName = "shapegen"

	// envLogLevel enables debug logging when set to "debug".
	envLogLevel = "SHAPEGEN_LOG_LEVEL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Build information, set by main.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// LevelFromEnv returns LogDebug when SHAPEGEN_LOG_LEVEL is "debug", otherwise
// fallback.
func LevelFromEnv(fallback log.Level) log.Level {
	if os.Getenv(envLogLevel) == "debug" {
		return LogDebug
	}
	return fallback
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Shapegen draws labeled synthetic shape scenes",
		Long:         `Shapegen renders random scenes of geometric shapes together with pixel-exact instance and class masks, for training and testing segmentation models.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.inspectCommand())

	return root
}

// loadConfig reads the config file and environment overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if c.configPath != "" {
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	return cfg, nil
}
