package detection

import (
	"sort"

	"github.com/ironsheep/shapegen/internal/raster"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// (X1, Y1) is the top-left pixel and (X2, Y2) the bottom-right pixel, both
// inclusive.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (inclusive)
	Y2 int `json:"y2"` // Bottom edge (inclusive)
}

// Width returns the horizontal extent in pixels.
func (b Bounds) Width() int { return b.X2 - b.X1 + 1 }

// Height returns the vertical extent in pixels.
func (b Bounds) Height() int { return b.Y2 - b.Y1 + 1 }

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Region is one 8-connected component of equal-valued mask pixels.
type Region struct {
	// Value is the label shared by every pixel of the region.
	Value int `json:"value"`

	// Bounds encloses the region.
	Bounds Bounds `json:"bounds"`

	// Area is the pixel count.
	Area int `json:"area"`

	// Points lists the region's pixels in discovery order.
	Points []Point `json:"-"`
}

// Regions finds the 8-connected components of pixels equal to value,
// largest first. Value 0 finds background regions.
func Regions(grid *raster.LabelGrid, value int) []Region {
	visited := make([]bool, len(grid.Pix))
	regions := make([]Region, 0)

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			i := y*grid.Width + x
			if visited[i] || grid.Pix[i] != value {
				continue
			}
			points := make([]Point, 0)
			floodFill(grid, value, visited, x, y, &points)
			regions = append(regions, newRegion(value, points))
		}
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Area > regions[j].Area
	})
	return regions
}

func newRegion(value int, points []Point) Region {
	b := Bounds{X1: points[0].X, Y1: points[0].Y, X2: points[0].X, Y2: points[0].Y}
	for _, p := range points[1:] {
		if p.X < b.X1 {
			b.X1 = p.X
		}
		if p.X > b.X2 {
			b.X2 = p.X
		}
		if p.Y < b.Y1 {
			b.Y1 = p.Y
		}
		if p.Y > b.Y2 {
			b.Y2 = p.Y
		}
	}
	return Region{Value: value, Bounds: b, Area: len(points), Points: points}
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack rather than recursion so large regions cannot overflow the
// goroutine stack. Marks visited pixels and appends them to points.
// Uses 8-connectivity (includes diagonal neighbors).
func floodFill(grid *raster.LabelGrid, value int, visited []bool, startX, startY int, points *[]Point) {
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= grid.Width || p.Y < 0 || p.Y >= grid.Height {
			continue
		}
		i := p.Y*grid.Width + p.X
		if visited[i] || grid.Pix[i] != value {
			continue
		}

		visited[i] = true
		*points = append(*points, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}
