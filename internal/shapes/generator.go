package shapes

import "fmt"

// Generator assembles descriptors from shape type choices. It is not safe
// for concurrent use.
type Generator struct {
	classes *ClassTable
	sampler *Sampler
}

// NewGenerator returns a Generator using classes for class ids and src for
// randomness. A nil table selects DefaultClassTable.
func NewGenerator(classes *ClassTable, src Source) *Generator {
	if classes == nil {
		classes = DefaultClassTable()
	}
	return &Generator{classes: classes, sampler: NewSampler(src)}
}

// Classes returns the generator's class table.
func (g *Generator) Classes() *ClassTable {
	return g.classes
}

// Descriptor builds one shape: it samples a transform, then builds the
// geometry under that transform.
func (g *Generator) Descriptor(t ShapeType, size int) (Descriptor, error) {
	if size <= 0 {
		return Descriptor{}, fmt.Errorf("%w: nominal size %d", ErrDegenerateGeometry, size)
	}
	if !t.Valid() {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrInvalidShapeType, t)
	}
	classID, err := g.classes.ClassID(t)
	if err != nil {
		return Descriptor{}, err
	}

	tr := g.sampler.Transform(size)
	geom, err := g.sampler.BuildGeometry(t, size, tr)
	if err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		Type:      t,
		ClassID:   classID,
		Size:      size,
		Transform: tr,
		Geometry:  geom,
	}, nil
}

// Scene builds one descriptor per type, preserving order. Any failure
// rejects the whole scene.
func (g *Generator) Scene(types []ShapeType, size int) (Scene, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: nominal size %d", ErrDegenerateGeometry, size)
	}
	scene := make(Scene, 0, len(types))
	for i, t := range types {
		d, err := g.Descriptor(t, size)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i+1, err)
		}
		scene = append(scene, d)
	}
	return scene, nil
}

// PickTypes draws n shape types uniformly from choices.
func (g *Generator) PickTypes(choices []ShapeType, n int) ([]ShapeType, error) {
	if n < 0 {
		return nil, fmt.Errorf("shape count must not be negative, got %d", n)
	}
	if n > 0 && len(choices) == 0 {
		return nil, fmt.Errorf("%w: no eligible shape types", ErrInvalidShapeType)
	}
	types := make([]ShapeType, n)
	for i := range types {
		types[i] = choices[g.sampler.src.IntN(len(choices))]
	}
	return types, nil
}

// RandomScene picks a shape count uniformly in [minShapes, maxShapes], draws
// that many types from choices and builds the scene.
func (g *Generator) RandomScene(choices []ShapeType, minShapes, maxShapes, size int) (Scene, error) {
	if minShapes < 0 || maxShapes < minShapes {
		return nil, fmt.Errorf("invalid shape count range [%d, %d]", minShapes, maxShapes)
	}
	n := minShapes + g.sampler.src.IntN(maxShapes-minShapes+1)
	types, err := g.PickTypes(choices, n)
	if err != nil {
		return nil, err
	}
	return g.Scene(types, size)
}
