package raster

import "sort"

// LabelGrid is a row-major grid of integer labels.
type LabelGrid struct {
	Width  int
	Height int
	Pix    []int
}

// NewLabelGrid returns a zeroed grid.
func NewLabelGrid(width, height int) *LabelGrid {
	return &LabelGrid{Width: width, Height: height, Pix: make([]int, width*height)}
}

// At returns the label at (x, y).
func (g *LabelGrid) At(x, y int) int {
	return g.Pix[y*g.Width+x]
}

// Set writes the label at (x, y).
func (g *LabelGrid) Set(x, y, v int) {
	g.Pix[y*g.Width+x] = v
}

// Clone returns a deep copy of g.
func (g *LabelGrid) Clone() *LabelGrid {
	c := &LabelGrid{Width: g.Width, Height: g.Height, Pix: make([]int, len(g.Pix))}
	copy(c.Pix, g.Pix)
	return c
}

// Values returns the distinct nonzero labels in ascending order.
func (g *LabelGrid) Values() []int {
	seen := make(map[int]struct{})
	for _, v := range g.Pix {
		if v != 0 {
			seen[v] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Max returns the largest label, or 0 for an empty grid.
func (g *LabelGrid) Max() int {
	m := 0
	for _, v := range g.Pix {
		if v > m {
			m = v
		}
	}
	return m
}

// ColorGrid is a row-major RGB grid with three float channels per pixel.
type ColorGrid struct {
	Width  int
	Height int
	Pix    []float64
}

// NewColorGrid returns a grid filled with c.
func NewColorGrid(width, height int, c [3]float64) *ColorGrid {
	g := &ColorGrid{Width: width, Height: height, Pix: make([]float64, 3*width*height)}
	for i := 0; i < len(g.Pix); i += 3 {
		g.Pix[i], g.Pix[i+1], g.Pix[i+2] = c[0], c[1], c[2]
	}
	return g
}

// At returns the RGB triple at (x, y).
func (g *ColorGrid) At(x, y int) [3]float64 {
	i := 3 * (y*g.Width + x)
	return [3]float64{g.Pix[i], g.Pix[i+1], g.Pix[i+2]}
}
