package shapes

import (
	"encoding/json"
	"fmt"
)

// Descriptor fully specifies one shape instance. Descriptors are built by a
// Generator and must not be modified afterwards.
type Descriptor struct {
	Type      ShapeType
	ClassID   int
	Size      int
	Transform Transform
	Geometry  Geometry
}

// Scene is an ordered list of descriptors. Order is draw order, and the
// 1-based index of a descriptor is its raw instance id.
type Scene []Descriptor

// Corners returns a copy of the polygon corners, or nil for round shapes.
func (d Descriptor) Corners() []Vec2 {
	p, ok := d.Geometry.(PolygonGeometry)
	if !ok {
		return nil
	}
	out := make([]Vec2, len(p.Corners))
	copy(out, p.Corners)
	return out
}

// LineWidth returns the outline width used when drawing d: 1% of the nominal
// size, rounded, and never less than one pixel.
func (d Descriptor) LineWidth() int {
	return LineWidth(d.Size)
}

// LineWidth returns the outline width for a nominal size.
func LineWidth(size int) int {
	w := (size + 50) / 100
	if w < 1 {
		w = 1
	}
	return w
}

// Validate checks that the geometry variant matches the shape type.
func (d Descriptor) Validate() error {
	if !d.Type.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidShapeType, d.Type)
	}
	if d.Size <= 0 {
		return fmt.Errorf("%w: nominal size %d", ErrDegenerateGeometry, d.Size)
	}
	if d.ClassID <= 0 {
		return fmt.Errorf("descriptor %s has class id %d", d.Type, d.ClassID)
	}
	if d.Geometry == nil {
		return fmt.Errorf("descriptor %s has no geometry", d.Type)
	}
	if d.Geometry.Category() != d.Type.Category() {
		return fmt.Errorf("descriptor %s carries %T", d.Type, d.Geometry)
	}
	if p, ok := d.Geometry.(PolygonGeometry); ok {
		n := len(p.Corners)
		if n < 4 || p.Corners[0] != p.Corners[n-1] {
			return fmt.Errorf("descriptor %s polygon is not closed", d.Type)
		}
	}
	return nil
}

type descriptorJSON struct {
	Type      string    `json:"type"`
	ClassID   int       `json:"class_id"`
	Size      int       `json:"nominal_size"`
	Transform Transform `json:"transform"`
	Category  string    `json:"category"`
	Center    *Vec2     `json:"center,omitempty"`
	Corners   []Vec2    `json:"corners,omitempty"`
}

// MarshalJSON flattens the geometry variant into "center" or "corners".
func (d Descriptor) MarshalJSON() ([]byte, error) {
	out := descriptorJSON{
		Type:      d.Type.String(),
		ClassID:   d.ClassID,
		Size:      d.Size,
		Transform: d.Transform,
	}
	switch g := d.Geometry.(type) {
	case RoundGeometry:
		c := g.Center
		out.Category = "round"
		out.Center = &c
	case PolygonGeometry:
		out.Category = "polygon"
		out.Corners = g.Corners
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a descriptor written by MarshalJSON.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var in descriptorJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	t, err := ParseShapeType(in.Type)
	if err != nil {
		return err
	}
	out := Descriptor{Type: t, ClassID: in.ClassID, Size: in.Size, Transform: in.Transform}
	switch t.Category() {
	case Round:
		if in.Center == nil {
			return fmt.Errorf("%w: %s without center", ErrDegenerateGeometry, t)
		}
		out.Geometry = RoundGeometry{Center: *in.Center}
	case Polygon:
		out.Geometry = PolygonGeometry{Corners: in.Corners}
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*d = out
	return nil
}
