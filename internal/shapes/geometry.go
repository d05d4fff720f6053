package shapes

import (
	"fmt"
	"math"
)

// Geometry is the canvas-space outline of a shape. It is either a
// RoundGeometry or a PolygonGeometry.
type Geometry interface {
	Category() Category
	isGeometry()
}

// RoundGeometry describes a circle or ellipse by the center point computed
// from its construction rule, shifted by the transform offset. The drawn
// ellipse spans the box from the offset to this point.
type RoundGeometry struct {
	Center Vec2 `json:"center"`
}

// Category implements Geometry.
func (RoundGeometry) Category() Category { return Round }

func (RoundGeometry) isGeometry() {}

// PolygonGeometry is a closed corner list (first corner == last corner) in
// canvas coordinates.
type PolygonGeometry struct {
	Corners []Vec2 `json:"corners"`
}

// Category implements Geometry.
func (PolygonGeometry) Category() Category { return Polygon }

func (PolygonGeometry) isGeometry() {}

// localCenter returns the unshifted center for a round shape.
func (s *Sampler) localCenter(t ShapeType, size float64) (Vec2, error) {
	switch t {
	case Circle:
		r := 0.25 * size
		return Vec2{X: r, Y: r}, nil
	case Ellipse:
		x := (s.src.Float64()*0.3 + 0.1) * size
		y := (s.src.Float64()*0.3 + 0.1) * size
		return Vec2{X: x, Y: y}, nil
	}
	return Vec2{}, fmt.Errorf("%w: %s is not round", ErrInvalidShapeType, t)
}

// LocalCorners returns the closed, untransformed corner list of a polygon
// shape built for the given nominal size.
func LocalCorners(t ShapeType, size float64) ([]Vec2, error) {
	switch t {
	case Triangle:
		l := 0.3 * size
		return []Vec2{{0, 0}, {l, 0}, {0.5 * l, 0.866 * l}, {0, 0}}, nil
	case Star:
		l := 0.2 * size
		a := l / (1 + math.Sqrt(3))
		return []Vec2{
			{0, l}, {l - a, l + a}, {l, 2 * l}, {l + a, l + a},
			{2 * l, l}, {l + a, l - a}, {l, 0}, {l - a, l - a}, {0, l},
		}, nil
	case Rectangle:
		return box(0.1*size, 0.8*size), nil
	case Square:
		w := 0.3 * size
		return box(w, w), nil
	}
	return nil, fmt.Errorf("%w: %s is not a polygon", ErrInvalidShapeType, t)
}

func box(w, h float64) []Vec2 {
	return []Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}, {0, 0}}
}

// BuildGeometry computes the canvas-space geometry of a shape of type t for
// the given nominal size and transform. Polygon corners are rotated and then
// translated (corners·R + offset). Round shapes are only translated.
//
// Ellipse centers consume two random draws from the sampler.
func (s *Sampler) BuildGeometry(t ShapeType, size int, tr Transform) (Geometry, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: nominal size %d", ErrDegenerateGeometry, size)
	}
	fs := float64(size)

	switch t.Category() {
	case Round:
		c, err := s.localCenter(t, fs)
		if err != nil {
			return nil, err
		}
		return RoundGeometry{Center: c.Add(tr.Offset)}, nil
	case Polygon:
		local, err := LocalCorners(t, fs)
		if err != nil {
			return nil, err
		}
		corners := make([]Vec2, len(local))
		for i, p := range local {
			corners[i] = tr.Rotation.MulRow(p).Add(tr.Offset)
		}
		return PolygonGeometry{Corners: corners}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidShapeType, t)
}
