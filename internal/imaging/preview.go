package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/shapegen/internal/raster"
)

// PreviewOptions controls preview rendering.
type PreviewOptions struct {
	// Opacity of the instance colors over the picture, 0-1. Default 0.5.
	Opacity float64

	// Scale resizes the finished preview. Default 1.
	Scale float64

	// Edges draws instance boundaries in dark gray.
	Edges bool
}

// Preview renders a human-readable view of layers: instance colors blended
// over the picture, background left as is, boundaries optionally outlined.
func Preview(layers *raster.Layers, opts PreviewOptions) image.Image {
	if opts.Opacity <= 0 || opts.Opacity > 1 {
		opts.Opacity = 0.5
	}

	base := clone.AsRGBA(ImageFromGrid(layers.Image))
	overlay := Colorize(layers.Instances)
	out := blend.Opacity(base, overlay, opts.Opacity)

	// Background keeps the original picture.
	for i, v := range layers.Instances.Pix {
		if v == 0 {
			copy(out.Pix[4*i:4*i+4], base.Pix[4*i:4*i+4])
		}
	}

	if opts.Edges {
		edges := LabelEdges(layers.Instances)
		ink := color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
		for i, e := range edges.Pix {
			if e != 0 {
				out.Pix[4*i] = ink.R
				out.Pix[4*i+1] = ink.G
				out.Pix[4*i+2] = ink.B
				out.Pix[4*i+3] = ink.A
			}
		}
	}

	return Scale(out, opts.Scale)
}
