package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/shapegen/internal/raster"
)

// ImageFromGrid converts a [0,1] color grid to an 8-bit opaque image.
func ImageFromGrid(g *raster.ColorGrid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i := 0; i < g.Width*g.Height; i++ {
		img.Pix[4*i] = to8(g.Pix[3*i])
		img.Pix[4*i+1] = to8(g.Pix[3*i+1])
		img.Pix[4*i+2] = to8(g.Pix[3*i+2])
		img.Pix[4*i+3] = 0xff
	}
	return img
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// MaskImage converts a label grid to a 16-bit grayscale image whose gray
// value is the label itself, so masks survive a PNG round trip exactly.
//
// Returns an error if any label is outside [0, 65535].
func MaskImage(g *raster.LabelGrid) (*image.Gray16, error) {
	img := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.At(x, y)
			if v < 0 || v > math.MaxUint16 {
				return nil, fmt.Errorf("label %d at (%d,%d) does not fit in 16 bits", v, x, y)
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(v)})
		}
	}
	return img, nil
}

// GridFromMask reads a label grid back from a 16-bit mask image.
func GridFromMask(img image.Image) *raster.LabelGrid {
	b := img.Bounds()
	g := raster.NewLabelGrid(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			g.Set(x, y, int(c.Y))
		}
	}
	return g
}

// GridFromImage converts any image to a [0,1] color grid, dropping alpha.
func GridFromImage(img image.Image) *raster.ColorGrid {
	b := img.Bounds()
	g := raster.NewColorGrid(b.Dx(), b.Dy(), [3]float64{})
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := 3 * (y*b.Dx() + x)
			g.Pix[i] = float64(c.R) / 255
			g.Pix[i+1] = float64(c.G) / 255
			g.Pix[i+2] = float64(c.B) / 255
		}
	}
	return g
}
