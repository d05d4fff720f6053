package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/shapegen/internal/raster"
)

// goldenAngle spaces consecutive hues so neighbors never look alike.
const goldenAngle = 137.50776405003785

// Palette returns n distinct, deterministic colors. Entry i is the color
// for label i+1.
//
// Hues advance by the golden angle; saturation and value alternate between
// two levels so labels that land on similar hues still differ.
func Palette(n int) []color.NRGBA {
	colors := make([]color.NRGBA, n)
	for i := range colors {
		h := math.Mod(float64(i)*goldenAngle, 360)
		s, v := 0.70, 0.95
		if i%2 == 1 {
			s, v = 0.55, 0.80
		}
		r, g, b := colorful.Hsv(h, s, v).RGB255()
		colors[i] = color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	return colors
}

// HexColor formats c as "#RRGGBB".
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Colorize paints every label with its palette color. Background (0) is
// transparent black.
func Colorize(g *raster.LabelGrid) *image.NRGBA {
	palette := Palette(g.Max())
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, v := range g.Pix {
		if v <= 0 {
			continue
		}
		c := palette[v-1]
		img.Pix[4*i] = c.R
		img.Pix[4*i+1] = c.G
		img.Pix[4*i+2] = c.B
		img.Pix[4*i+3] = c.A
	}
	return img
}

// Legend maps each label present in g to its hex color.
func Legend(g *raster.LabelGrid) map[int]string {
	palette := Palette(g.Max())
	legend := make(map[int]string)
	for _, v := range g.Values() {
		if v > 0 {
			legend[v] = HexColor(palette[v-1])
		}
	}
	return legend
}
