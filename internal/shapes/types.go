package shapes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidShapeType is returned when a shape type is not one of the
	// supported variants or is missing from the class table.
	ErrInvalidShapeType = errors.New("invalid shape type")

	// ErrDegenerateGeometry is returned for a nominal size that would produce
	// zero-area shapes.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// ShapeType identifies a geometry construction rule.
type ShapeType uint8

// Supported shape types. The zero value is deliberately invalid.
const (
	Circle ShapeType = iota + 1
	Triangle
	Rectangle
	Ellipse
	Star
	Square
)

// Category groups shape types by how they are described and drawn.
type Category uint8

const (
	// Round shapes are described by a center point.
	Round Category = iota + 1
	// Polygon shapes are described by a closed corner list.
	Polygon
)

var shapeNames = map[ShapeType]string{
	Circle:    "circle",
	Triangle:  "triangle",
	Rectangle: "rectangle",
	Ellipse:   "ellipse",
	Star:      "star",
	Square:    "square",
}

// AllShapeTypes returns every supported shape type in declaration order.
func AllShapeTypes() []ShapeType {
	return []ShapeType{Circle, Triangle, Rectangle, Ellipse, Star, Square}
}

// String returns the lower-case name of the shape type.
func (t ShapeType) String() string {
	if name, ok := shapeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ShapeType(%d)", uint8(t))
}

// Valid reports whether t is a supported shape type.
func (t ShapeType) Valid() bool {
	_, ok := shapeNames[t]
	return ok
}

// Category returns the drawing category of t, or 0 for an unknown type.
func (t ShapeType) Category() Category {
	switch t {
	case Circle, Ellipse:
		return Round
	case Triangle, Star, Rectangle, Square:
		return Polygon
	}
	return 0
}

// ParseShapeType resolves a shape name such as "circle" or "Star".
func ParseShapeType(name string) (ShapeType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range shapeNames {
		if n == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidShapeType, name)
}

// ParseShapeTypes resolves a list of shape names, failing on the first
// unknown one.
func ParseShapeTypes(names []string) ([]ShapeType, error) {
	types := make([]ShapeType, 0, len(names))
	for _, name := range names {
		t, err := ParseShapeType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// ClassTable maps shape types to the integer class ids written into class
// masks. Class ids are positive and unique; 0 is reserved for background.
type ClassTable struct {
	ids map[ShapeType]int
}

// DefaultClassTable returns the built-in mapping:
// circle=1, triangle=2, rectangle=3, ellipse=4, star=5, square=6.
func DefaultClassTable() *ClassTable {
	return &ClassTable{ids: map[ShapeType]int{
		Circle:    1,
		Triangle:  2,
		Rectangle: 3,
		Ellipse:   4,
		Star:      5,
		Square:    6,
	}}
}

// NewClassTable validates and copies a caller-supplied mapping.
func NewClassTable(ids map[ShapeType]int) (*ClassTable, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("class table is empty")
	}
	seen := make(map[int]ShapeType, len(ids))
	table := &ClassTable{ids: make(map[ShapeType]int, len(ids))}
	for t, id := range ids {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidShapeType, t)
		}
		if id <= 0 {
			return nil, fmt.Errorf("class id for %s must be positive, got %d", t, id)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("class id %d assigned to both %s and %s", id, prev, t)
		}
		seen[id] = t
		table.ids[t] = id
	}
	return table, nil
}

// ClassID returns the class id of t.
func (c *ClassTable) ClassID(t ShapeType) (int, error) {
	id, ok := c.ids[t]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no class id", ErrInvalidShapeType, t)
	}
	return id, nil
}

// Has reports whether id is one of the table's class ids.
func (c *ClassTable) Has(id int) bool {
	for _, v := range c.ids {
		if v == id {
			return true
		}
	}
	return false
}

// ClassEntry is one row of a ClassTable.
type ClassEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Entries returns the table sorted by class id.
func (c *ClassTable) Entries() []ClassEntry {
	entries := make([]ClassEntry, 0, len(c.ids))
	for t, id := range c.ids {
		entries = append(entries, ClassEntry{ID: id, Name: t.String()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}
