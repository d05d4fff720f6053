package raster

import (
	"math"

	"github.com/ironsheep/shapegen/internal/shapes"
	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498307936

// path adds one closed sub-path to a rasterizer. Every path emits its points
// with positive signed area so that overlapping paths accumulate into a
// union instead of cancelling.
type path func(r *vector.Rasterizer)

// box is an axis-aligned bounding box [X0, Y0, X1, Y1].
type box struct {
	X0, Y0, X1, Y1 float64
}

// grow returns b expanded by d on every side. A negative d shrinks it.
func (b box) grow(d float64) box {
	return box{X0: b.X0 - d, Y0: b.Y0 - d, X1: b.X1 + d, Y1: b.Y1 + d}
}

func (b box) empty() bool {
	return b.X1 <= b.X0 || b.Y1 <= b.Y0
}

// ellipsePath traces the ellipse inscribed in b as four cubic arcs.
func ellipsePath(b box) path {
	cx, cy := (b.X0+b.X1)/2, (b.Y0+b.Y1)/2
	rx, ry := (b.X1-b.X0)/2, (b.Y1-b.Y0)/2
	kx, ky := kappa*rx, kappa*ry
	return func(r *vector.Rasterizer) {
		r.MoveTo(f32(cx+rx), f32(cy))
		r.CubeTo(f32(cx+rx), f32(cy+ky), f32(cx+kx), f32(cy+ry), f32(cx), f32(cy+ry))
		r.CubeTo(f32(cx-kx), f32(cy+ry), f32(cx-rx), f32(cy+ky), f32(cx-rx), f32(cy))
		r.CubeTo(f32(cx-rx), f32(cy-ky), f32(cx-kx), f32(cy-ry), f32(cx), f32(cy-ry))
		r.CubeTo(f32(cx+kx), f32(cy-ry), f32(cx+rx), f32(cy-ky), f32(cx+rx), f32(cy))
		r.ClosePath()
	}
}

// discPath is a circle of diameter d centered on p.
func discPath(p shapes.Vec2, d float64) path {
	h := d / 2
	return ellipsePath(box{X0: p.X - h, Y0: p.Y - h, X1: p.X + h, Y1: p.Y + h})
}

// polygonPath traces a polygon. A trailing point equal to the first is
// dropped since ClosePath closes the ring.
func polygonPath(pts []shapes.Vec2) path {
	ring := pts
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}
	if signedArea(ring) < 0 {
		rev := make([]shapes.Vec2, len(ring))
		for i, p := range ring {
			rev[len(ring)-1-i] = p
		}
		ring = rev
	}
	return func(r *vector.Rasterizer) {
		if len(ring) < 3 {
			return
		}
		r.MoveTo(f32(ring[0].X), f32(ring[0].Y))
		for _, p := range ring[1:] {
			r.LineTo(f32(p.X), f32(p.Y))
		}
		r.ClosePath()
	}
}

// strokePaths returns one quad per non-degenerate segment of pts, each of
// the given width and centered on the segment.
func strokePaths(pts []shapes.Vec2, width float64) []path {
	paths := make([]path, 0, len(pts))
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*width/2, dx/length*width/2
		paths = append(paths, polygonPath([]shapes.Vec2{
			{X: a.X + nx, Y: a.Y + ny},
			{X: b.X + nx, Y: b.Y + ny},
			{X: b.X - nx, Y: b.Y - ny},
			{X: a.X - nx, Y: a.Y - ny},
		}))
	}
	return paths
}

// signedArea is the shoelace sum over the ring; positive for rings that run
// clockwise on screen (Y down).
func signedArea(ring []shapes.Vec2) float64 {
	var s float64
	for i := range ring {
		j := (i + 1) % len(ring)
		s += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return s / 2
}

func f32(v float64) float32 {
	return float32(v)
}
