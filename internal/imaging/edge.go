package imaging

import (
	"image"
	"image/color"

	"github.com/ironsheep/shapegen/internal/raster"
)

// LabelEdges marks label boundaries: a pixel is an edge (255) when it is
// labeled and one of its 4-neighbors carries a different label. Pixels on the
// canvas border are compared against background.
func LabelEdges(g *raster.LabelGrid) *image.Gray {
	edges := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	at := func(x, y int) int {
		if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
			return 0
		}
		return g.At(x, y)
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.At(x, y)
			if v == 0 {
				continue
			}
			if at(x-1, y) != v || at(x+1, y) != v || at(x, y-1) != v || at(x, y+1) != v {
				edges.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return edges
}
