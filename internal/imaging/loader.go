package imaging

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/shapegen/internal/raster"
)

// MaskCache provides thread-safe caching of label masks read from disk.
//
// Masks are decoded once per path; later Load calls return the cached grid.
// Callers must treat returned grids as read-only.
//
// Cached masks remain in memory until explicitly removed via Evict or Clear.
//
//	cache := imaging.NewMaskCache()
//	grid, err := cache.Load("dataset/sample_00000/instance_mask.png")
type MaskCache struct {
	mu    sync.RWMutex
	masks map[string]*raster.LabelGrid
}

// NewMaskCache creates an empty mask cache.
func NewMaskCache() *MaskCache {
	return &MaskCache{
		masks: make(map[string]*raster.LabelGrid),
	}
}

// Load retrieves a mask from the cache or reads it from disk if not cached.
//
// The file must be a 16-bit grayscale PNG as written by MaskImage; 8-bit
// images would silently rescale labels and are rejected.
//
// The mask is cached using the exact path string provided. Different paths to
// the same file result in separate cache entries.
func (c *MaskCache) Load(path string) (*raster.LabelGrid, error) {
	c.mu.RLock()
	if g, ok := c.masks[path]; ok {
		c.mu.RUnlock()
		return g, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mask: %w", err)
	}
	if _, ok := img.(*image.Gray16); !ok {
		return nil, fmt.Errorf("mask %s is %T, want 16-bit grayscale", path, img)
	}
	g := GridFromMask(img)

	c.mu.Lock()
	c.masks[path] = g
	c.mu.Unlock()

	return g, nil
}

// Len returns the number of cached masks.
func (c *MaskCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.masks)
}

// Clear removes all masks from the cache.
func (c *MaskCache) Clear() {
	c.mu.Lock()
	c.masks = make(map[string]*raster.LabelGrid)
	c.mu.Unlock()
}

// Evict removes a specific mask from the cache by its path.
// After eviction, the next Load call for this path reads from disk.
func (c *MaskCache) Evict(path string) {
	c.mu.Lock()
	delete(c.masks, path)
	c.mu.Unlock()
}

// LoadPicture reads an 8-bit picture back into a [0,1] color grid.
func LoadPicture(path string) (*raster.ColorGrid, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return GridFromImage(img), nil
}

// FileInfo describes a stored image file.
type FileInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// ColorDepth is "16-bit" for masks, "8-bit" for pictures.
	ColorDepth string `json:"color_depth"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// StatFile returns metadata for the image at path without decoding pixels.
func StatFile(path string) (*FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	depth := "8-bit"
	switch cfg.ColorModel {
	case color.Gray16Model, color.RGBA64Model, color.NRGBA64Model:
		depth = "16-bit"
	}
	return &FileInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		ColorDepth:    depth,
		FileSizeBytes: stat.Size(),
	}, nil
}
