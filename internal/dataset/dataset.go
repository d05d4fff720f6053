// Package dataset writes batches of generated samples to disk.
//
// Each sample is generated from its own seed (base seed + sample index), so a
// batch is byte-for-byte reproducible no matter how many workers produce it
// or in which order they finish.
//
// # Layout
//
//	<output>/
//	  classes.json
//	  sample_00000/
//	    image.png           8-bit RGB picture
//	    instance_mask.png   16-bit, compacted instance ids
//	    class_mask.png      16-bit, class ids
//	    preview.png         optional, colored instances over the picture
//	    meta.json           descriptors, remap and instance statistics
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/shapegen/internal/detection"
	"github.com/ironsheep/shapegen/internal/imaging"
	"github.com/ironsheep/shapegen/internal/raster"
	"github.com/ironsheep/shapegen/internal/shapes"
)

// Options describes one batch.
type Options struct {
	Output       string
	Count        int
	Seed         uint64
	Choices      []shapes.ShapeType
	Classes      *shapes.ClassTable
	NominalSize  int
	CanvasSize   int
	MinShapes    int
	MaxShapes    int
	Workers      int
	Preview      bool
	PreviewScale float64
}

// Sample is one generated scene with its layers.
type Sample struct {
	Index  int
	Seed   uint64
	Scene  shapes.Scene
	Layers *raster.Layers
}

// Meta is the content of a sample's meta.json.
type Meta struct {
	Index      int                  `json:"index"`
	Seed       uint64               `json:"seed"`
	CanvasSize int                  `json:"canvas_size"`
	Shapes     shapes.Scene         `json:"shapes"`
	Remap      map[int]int          `json:"remap"`
	Instances  []detection.Instance `json:"instances"`
	Hidden     []int                `json:"hidden"`
}

// Summary reports what a batch produced.
type Summary struct {
	Samples   int
	Instances int
	Hidden    int
	Duration  time.Duration
}

// Writer generates and stores samples.
type Writer struct {
	Logger *log.Logger
}

// NewWriter returns a Writer. A nil logger selects log.Default().
func NewWriter(logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.Default()
	}
	return &Writer{Logger: logger}
}

// Generate builds sample index of a batch without touching the disk.
func Generate(opts Options, index int) (*Sample, error) {
	seed := opts.Seed + uint64(index)
	g := shapes.NewGenerator(opts.Classes, shapes.NewSource(seed))
	scene, err := g.RandomScene(opts.Choices, opts.MinShapes, opts.MaxShapes, opts.NominalSize)
	if err != nil {
		return nil, fmt.Errorf("sample %d: %w", index, err)
	}
	layers, err := raster.Rasterize(scene, opts.CanvasSize)
	if err != nil {
		return nil, fmt.Errorf("sample %d: %w", index, err)
	}
	return &Sample{Index: index, Seed: seed, Scene: scene, Layers: layers}, nil
}

// Write generates opts.Count samples into opts.Output using opts.Workers
// goroutines. The first failure cancels the batch and is returned.
func (w *Writer) Write(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Classes == nil {
		opts.Classes = shapes.DefaultClassTable()
	}
	if err := os.MkdirAll(opts.Output, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeJSON(filepath.Join(opts.Output, "classes.json"), opts.Classes.Entries()); err != nil {
		return nil, err
	}

	start := time.Now()
	var instances, hidden atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < opts.Count; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sample, err := Generate(opts, i)
			if err != nil {
				return err
			}
			meta, err := w.store(opts, sample)
			if err != nil {
				return err
			}
			instances.Add(int64(len(meta.Instances)))
			hidden.Add(int64(len(meta.Hidden)))
			w.Logger.Debug("wrote sample", "index", i, "shapes", len(sample.Scene), "visible", len(meta.Instances))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Samples:   opts.Count,
		Instances: int(instances.Load()),
		Hidden:    int(hidden.Load()),
		Duration:  time.Since(start),
	}
	w.Logger.Info("dataset written",
		"output", opts.Output,
		"samples", summary.Samples,
		"instances", summary.Instances,
		"hidden", summary.Hidden,
		"duration", summary.Duration.Round(time.Millisecond))
	return summary, nil
}

// SampleDir returns the directory of sample index under output.
func SampleDir(output string, index int) string {
	return filepath.Join(output, fmt.Sprintf("sample_%05d", index))
}

func (w *Writer) store(opts Options, s *Sample) (*Meta, error) {
	dir := SampleDir(opts.Output, s.Index)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sample directory: %w", err)
	}

	if err := imaging.Save(imaging.ImageFromGrid(s.Layers.Image), filepath.Join(dir, ImageFile)); err != nil {
		return nil, err
	}
	instances, err := imaging.MaskImage(s.Layers.Instances)
	if err != nil {
		return nil, err
	}
	if err := imaging.Save(instances, filepath.Join(dir, InstanceMaskFile)); err != nil {
		return nil, err
	}
	classes, err := imaging.MaskImage(s.Layers.Classes)
	if err != nil {
		return nil, err
	}
	if err := imaging.Save(classes, filepath.Join(dir, ClassMaskFile)); err != nil {
		return nil, err
	}
	if opts.Preview {
		preview := imaging.Preview(s.Layers, imaging.PreviewOptions{Scale: opts.PreviewScale, Edges: true})
		if err := imaging.Save(preview, filepath.Join(dir, PreviewFile)); err != nil {
			return nil, err
		}
	}

	stats := detection.Instances(s.Layers, len(s.Scene))
	meta := &Meta{
		Index:      s.Index,
		Seed:       s.Seed,
		CanvasSize: opts.CanvasSize,
		Shapes:     s.Scene,
		Remap:      s.Layers.Remap,
		Instances:  stats.Instances,
		Hidden:     stats.Hidden,
	}
	if err := writeJSON(filepath.Join(dir, MetaFile), meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
