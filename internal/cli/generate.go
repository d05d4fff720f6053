package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/shapegen/internal/config"
	"github.com/ironsheep/shapegen/internal/dataset"
)

// generateFlags hold command-line overrides for the [generate] config section.
type generateFlags struct {
	count   int
	out     string
	seed    uint64
	canvas  int
	size    int
	workers int
	preview bool
}

// generateCommand writes a dataset to disk.
func (c *CLI) generateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dataset of labeled shape scenes",
		Long: `Generate renders --count random scenes and writes, for each one, the picture,
a 16-bit instance mask, a 16-bit class mask and a meta.json describing every shape.
The same seed always produces the same dataset.`,
		Example: `  shapegen generate --count 1000 --out data --seed 7
  shapegen generate -c shapegen.toml --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyGenerateFlags(cmd, &cfg.Generate, flags)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			opts, err := datasetOptions(cfg)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.count, "count", "n", 0, "number of samples")
	f.StringVarP(&flags.out, "out", "o", "", "output directory")
	f.Uint64Var(&flags.seed, "seed", 0, "base random seed")
	f.IntVar(&flags.canvas, "canvas", 0, "canvas size in pixels")
	f.IntVar(&flags.size, "size", 0, "nominal shape size in pixels")
	f.IntVarP(&flags.workers, "workers", "w", 0, "parallel workers")
	f.BoolVar(&flags.preview, "preview", false, "also write colored previews")

	return cmd
}

// applyGenerateFlags copies the flags the user actually set over g.
func applyGenerateFlags(cmd *cobra.Command, g *config.Generate, flags generateFlags) {
	changed := cmd.Flags().Changed
	if changed("count") {
		g.Count = flags.count
	}
	if changed("out") {
		g.Output = flags.out
	}
	if changed("seed") {
		g.Seed = flags.seed
	}
	if changed("canvas") {
		g.CanvasSize = flags.canvas
	}
	if changed("size") {
		g.NominalSize = flags.size
	}
	if changed("workers") {
		g.Workers = flags.workers
	}
	if changed("preview") {
		g.Preview = flags.preview
	}
}

func datasetOptions(cfg *config.Config) (dataset.Options, error) {
	choices, err := cfg.ShapeTypes()
	if err != nil {
		return dataset.Options{}, err
	}
	classes, err := cfg.ClassTable()
	if err != nil {
		return dataset.Options{}, err
	}
	g := cfg.Generate
	return dataset.Options{
		Output:       g.Output,
		Count:        g.Count,
		Seed:         g.Seed,
		Choices:      choices,
		Classes:      classes,
		NominalSize:  g.NominalSize,
		CanvasSize:   g.CanvasSize,
		MinShapes:    g.MinShapes,
		MaxShapes:    g.MaxShapes,
		Workers:      g.Workers,
		Preview:      g.Preview,
		PreviewScale: g.PreviewScale,
	}, nil
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts dataset.Options) error {
	c.Logger.Info("Generating dataset", "count", opts.Count, "seed", opts.Seed, "workers", opts.Workers)
	summary, err := dataset.NewWriter(c.Logger).Write(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Generated %d samples in %s", summary.Samples, summary.Duration.Round(time.Millisecond))
	printKeyValue(out, "instances", fmt.Sprint(summary.Instances))
	printKeyValue(out, "hidden", fmt.Sprint(summary.Hidden))
	printFile(out, filepath.Join(opts.Output, "classes.json"))
	return nil
}
