package imaging

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/shapegen/internal/raster"
)

// writeMask stores g as a 16-bit mask under dir and returns its path.
func writeMask(t *testing.T, dir, name string, g *raster.LabelGrid) string {
	t.Helper()
	mask, err := MaskImage(g)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, Save(mask, path))
	return path
}

func labelPattern() *raster.LabelGrid {
	g := raster.NewLabelGrid(6, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			g.Set(x, y, (x/2)*300+y)
		}
	}
	return g
}

func TestMaskCache_Load(t *testing.T) {
	want := labelPattern()
	path := writeMask(t, t.TempDir(), "mask.png", want)

	cache := NewMaskCache()
	got, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, cache.Len())

	again, err := cache.Load(path)
	require.NoError(t, err)
	assert.Same(t, got, again, "second load is served from the cache")
}

func TestMaskCache_Load_NonExistent(t *testing.T) {
	_, err := NewMaskCache().Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestMaskCache_Load_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))
	_, err := NewMaskCache().Load(path)
	assert.Error(t, err)
}

func TestMaskCache_Load_RejectsEightBit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rgb.png")
	require.NoError(t, Save(image.NewNRGBA(image.Rect(0, 0, 3, 3)), path))
	_, err := NewMaskCache().Load(path)
	assert.ErrorContains(t, err, "16-bit")
}

func TestMaskCache_ClearAndEvict(t *testing.T) {
	dir := t.TempDir()
	a := writeMask(t, dir, "a.png", labelPattern())
	b := writeMask(t, dir, "b.png", labelPattern())

	cache := NewMaskCache()
	_, err := cache.Load(a)
	require.NoError(t, err)
	_, err = cache.Load(b)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	cache.Evict(a)
	cache.Evict("never-loaded.png")
	assert.Equal(t, 1, cache.Len())

	cache.Clear()
	assert.Zero(t, cache.Len())
}

func TestMaskCache_ConcurrentAccess(t *testing.T) {
	path := writeMask(t, t.TempDir(), "mask.png", labelPattern())
	cache := NewMaskCache()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := cache.Load(path)
			assert.NoError(t, err)
			assert.Equal(t, 603, g.At(5, 3))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, cache.Len())
}

func TestLoadPicture(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 51, B: 255, A: 255})
	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, Save(img, path))

	g, err := LoadPicture(path)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{1, 1, 1}, g.At(0, 0))
	assert.Equal(t, [3]float64{0, 0.2, 1}, g.At(1, 0))
	assert.Equal(t, img, ImageFromGrid(g))
}

func TestStatFile(t *testing.T) {
	dir := t.TempDir()
	mask := writeMask(t, dir, "mask.png", labelPattern())
	pic := filepath.Join(dir, "pic.png")
	require.NoError(t, Save(image.NewNRGBA(image.Rect(0, 0, 7, 5)), pic))

	info, err := StatFile(mask)
	require.NoError(t, err)
	assert.Equal(t, 6, info.Width)
	assert.Equal(t, 4, info.Height)
	assert.Equal(t, "16-bit", info.ColorDepth)
	assert.Positive(t, info.FileSizeBytes)

	info, err = StatFile(pic)
	require.NoError(t, err)
	assert.Equal(t, 7, info.Width)
	assert.Equal(t, "8-bit", info.ColorDepth)

	_, err = StatFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
