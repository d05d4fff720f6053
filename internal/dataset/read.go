package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/ironsheep/shapegen/internal/detection"
	"github.com/ironsheep/shapegen/internal/imaging"
	"github.com/ironsheep/shapegen/internal/raster"
)

// File names inside a sample directory.
const (
	ImageFile        = "image.png"
	InstanceMaskFile = "instance_mask.png"
	ClassMaskFile    = "class_mask.png"
	PreviewFile      = "preview.png"
	MetaFile         = "meta.json"
)

// Stored is a sample read back from disk.
type Stored struct {
	Dir    string
	Meta   Meta
	Layers *raster.Layers

	// Report is the consistency check of the two masks.
	Report *detection.Report

	// Stats are the instance statistics recomputed from the masks.
	Stats *detection.InstancesResult
}

// MatchesMeta reports whether the recomputed statistics equal the ones
// recorded in meta.json.
func (s *Stored) MatchesMeta() bool {
	return reflect.DeepEqual(s.Stats.Instances, s.Meta.Instances) &&
		reflect.DeepEqual(s.Stats.Hidden, s.Meta.Hidden)
}

// ReadSample loads the sample stored in dir. Masks are read through cache;
// a nil cache reads them directly.
func ReadSample(dir string, cache *imaging.MaskCache) (*Stored, error) {
	if cache == nil {
		cache = imaging.NewMaskCache()
	}

	data, err := os.ReadFile(filepath.Join(dir, MetaFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read sample: %w", err)
	}
	s := &Stored{Dir: dir}
	if err := json.Unmarshal(data, &s.Meta); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", MetaFile, err)
	}
	if s.Meta.Hidden == nil {
		s.Meta.Hidden = make([]int, 0)
	}

	picture, err := imaging.LoadPicture(filepath.Join(dir, ImageFile))
	if err != nil {
		return nil, err
	}
	instances, err := cache.Load(filepath.Join(dir, InstanceMaskFile))
	if err != nil {
		return nil, err
	}
	classes, err := cache.Load(filepath.Join(dir, ClassMaskFile))
	if err != nil {
		return nil, err
	}

	s.Report = detection.Verify(instances, classes)
	s.Layers = &raster.Layers{
		Image:           picture,
		Instances:       instances,
		Classes:         classes,
		Remap:           s.Meta.Remap,
		InstanceClasses: s.Report.InstanceClasses,
	}
	if s.Layers.Remap == nil {
		s.Layers.Remap = make(map[int]int)
	}
	s.Stats = detection.Instances(s.Layers, len(s.Meta.Shapes))
	return s, nil
}
