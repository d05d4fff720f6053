package shapes

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource replays preset values, cycling when exhausted.
type fixedSource struct {
	ints   []int
	floats []float64
	ii, fi int
}

func (f *fixedSource) IntN(n int) int {
	v := f.ints[f.ii%len(f.ints)]
	f.ii++
	return v % n
}

func (f *fixedSource) Float64() float64 {
	v := f.floats[f.fi%len(f.floats)]
	f.fi++
	return v
}

func TestParseShapeType(t *testing.T) {
	tests := []struct {
		name string
		want ShapeType
	}{
		{"circle", Circle},
		{"Triangle", Triangle},
		{" rectangle ", Rectangle},
		{"ELLIPSE", Ellipse},
		{"star", Star},
		{"square", Square},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShapeType(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseShapeType("hexagon")
	assert.ErrorIs(t, err, ErrInvalidShapeType)
}

func TestShapeType_Category(t *testing.T) {
	assert.Equal(t, Round, Circle.Category())
	assert.Equal(t, Round, Ellipse.Category())
	for _, st := range []ShapeType{Triangle, Star, Rectangle, Square} {
		assert.Equal(t, Polygon, st.Category(), st.String())
	}
	assert.Equal(t, Category(0), ShapeType(42).Category())
	assert.Equal(t, "ShapeType(42)", ShapeType(42).String())
}

func TestNewClassTable(t *testing.T) {
	table, err := NewClassTable(map[ShapeType]int{Circle: 7, Square: 9})
	require.NoError(t, err)

	id, err := table.ClassID(Square)
	require.NoError(t, err)
	assert.Equal(t, 9, id)
	assert.True(t, table.Has(7))
	assert.False(t, table.Has(1))

	_, err = table.ClassID(Triangle)
	assert.ErrorIs(t, err, ErrInvalidShapeType)

	_, err = NewClassTable(map[ShapeType]int{Circle: 1, Star: 1})
	assert.Error(t, err)
	_, err = NewClassTable(map[ShapeType]int{Circle: 0})
	assert.Error(t, err)
	_, err = NewClassTable(map[ShapeType]int{ShapeType(99): 3})
	assert.ErrorIs(t, err, ErrInvalidShapeType)
	_, err = NewClassTable(nil)
	assert.Error(t, err)
}

func TestDefaultClassTable_Entries(t *testing.T) {
	entries := DefaultClassTable().Entries()
	require.Len(t, entries, 6)
	assert.Equal(t, ClassEntry{ID: 1, Name: "circle"}, entries[0])
	assert.Equal(t, ClassEntry{ID: 2, Name: "triangle"}, entries[1])
	assert.Equal(t, ClassEntry{ID: 3, Name: "rectangle"}, entries[2])
}

func TestSampler_Transform(t *testing.T) {
	src := &fixedSource{ints: []int{90}, floats: []float64{0, 0.5}}
	tr := NewSampler(src).Transform(100)

	assert.Equal(t, 90, tr.Angle)
	assert.Equal(t, Vec2{X: 10, Y: 50}, tr.Offset)
	assert.InDelta(t, 0, tr.Rotation[0][0], 1e-12)
	assert.InDelta(t, -1, tr.Rotation[0][1], 1e-12)
	assert.InDelta(t, 1, tr.Rotation[1][0], 1e-12)
}

func TestSampler_TransformRange(t *testing.T) {
	s := NewSampler(NewSource(7))
	for i := 0; i < 500; i++ {
		tr := s.Transform(200)
		assert.GreaterOrEqual(t, tr.Angle, 0)
		assert.Less(t, tr.Angle, 360)
		for _, v := range []float64{tr.Offset.X, tr.Offset.Y} {
			assert.GreaterOrEqual(t, v, 20.0)
			assert.LessOrEqual(t, v, 180.0)
			assert.Equal(t, math.Round(v), v)
		}
	}
}

func TestLocalCorners(t *testing.T) {
	tests := []struct {
		shape ShapeType
		n     int
		want  Vec2 // third corner
	}{
		{Triangle, 4, Vec2{15, 0.866 * 30}},
		{Rectangle, 5, Vec2{10, 80}},
		{Square, 5, Vec2{30, 30}},
		{Star, 9, Vec2{20, 40}},
	}
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			corners, err := LocalCorners(tt.shape, 100)
			require.NoError(t, err)
			require.Len(t, corners, tt.n)
			assert.Equal(t, corners[0], corners[len(corners)-1], "polygon must be closed")
			assert.InDelta(t, tt.want.X, corners[2].X, 1e-9)
			assert.InDelta(t, tt.want.Y, corners[2].Y, 1e-9)
		})
	}

	_, err := LocalCorners(Circle, 100)
	assert.ErrorIs(t, err, ErrInvalidShapeType)
}

func TestBuildGeometry_Polygon(t *testing.T) {
	s := NewSampler(&fixedSource{ints: []int{0}, floats: []float64{0}})
	tr := NewTransform(90, Vec2{X: 40, Y: 50})

	g, err := s.BuildGeometry(Square, 100, tr)
	require.NoError(t, err)
	poly, ok := g.(PolygonGeometry)
	require.True(t, ok)

	// (30, 0)·R90 = (0, -30), plus offset.
	assert.InDelta(t, 40, poly.Corners[1].X, 1e-9)
	assert.InDelta(t, 20, poly.Corners[1].Y, 1e-9)
	assert.Equal(t, poly.Corners[0], poly.Corners[4])
}

func TestBuildGeometry_RoundIgnoresRotation(t *testing.T) {
	offset := Vec2{X: 30, Y: 40}
	var centers []Vec2
	for _, angle := range []int{0, 90, 180, 270} {
		s := NewSampler(&fixedSource{ints: []int{0}, floats: []float64{0.5}})
		for _, st := range []ShapeType{Circle, Ellipse} {
			g, err := s.BuildGeometry(st, 100, NewTransform(angle, offset))
			require.NoError(t, err)
			round, ok := g.(RoundGeometry)
			require.True(t, ok)
			centers = append(centers, round.Center)
		}
	}
	for i := 0; i < len(centers); i += 2 {
		assert.Equal(t, Vec2{X: 55, Y: 65}, centers[i], "circle center")
		assert.Equal(t, Vec2{X: 55, Y: 65}, centers[i+1], "ellipse center")
	}
}

func TestBuildGeometry_Errors(t *testing.T) {
	s := NewSampler(NewSource(1))
	_, err := s.BuildGeometry(ShapeType(0), 100, Transform{})
	assert.ErrorIs(t, err, ErrInvalidShapeType)
	_, err = s.BuildGeometry(Circle, 0, Transform{})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestGenerator_Scene(t *testing.T) {
	g := NewGenerator(nil, NewSource(3))
	types := []ShapeType{Triangle, Circle, Star, Ellipse, Rectangle, Square}

	scene, err := g.Scene(types, 120)
	require.NoError(t, err)
	require.Len(t, scene, len(types))
	for i, d := range scene {
		assert.Equal(t, types[i], d.Type)
		assert.Equal(t, 120, d.Size)
		assert.NoError(t, d.Validate())
	}
	assert.Equal(t, 2, scene[0].ClassID)
	assert.Equal(t, 1, scene[1].ClassID)
}

func TestGenerator_SceneRejectsWhole(t *testing.T) {
	table, err := NewClassTable(map[ShapeType]int{Circle: 1})
	require.NoError(t, err)
	g := NewGenerator(table, NewSource(3))

	scene, err := g.Scene([]ShapeType{Circle, Triangle}, 100)
	assert.ErrorIs(t, err, ErrInvalidShapeType)
	assert.Nil(t, scene)

	_, err = g.Scene([]ShapeType{Circle}, -5)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestGenerator_Reproducible(t *testing.T) {
	types := []ShapeType{Ellipse, Star, Circle}
	a, err := NewGenerator(nil, NewSource(11)).Scene(types, 100)
	require.NoError(t, err)
	b, err := NewGenerator(nil, NewSource(11)).Scene(types, 100)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerator_RandomScene(t *testing.T) {
	g := NewGenerator(nil, NewSource(5))
	choices := []ShapeType{Circle, Triangle}
	for i := 0; i < 50; i++ {
		scene, err := g.RandomScene(choices, 1, 4, 100)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(scene), 1)
		assert.LessOrEqual(t, len(scene), 4)
		for _, d := range scene {
			assert.Contains(t, choices, d.Type)
		}
	}

	_, err := g.RandomScene(nil, 1, 2, 100)
	assert.ErrorIs(t, err, ErrInvalidShapeType)
	_, err = g.RandomScene(choices, 3, 2, 100)
	assert.Error(t, err)
}

func TestDescriptor_Corners(t *testing.T) {
	d, err := NewGenerator(nil, NewSource(1)).Descriptor(Triangle, 100)
	require.NoError(t, err)

	c := d.Corners()
	c[0] = Vec2{X: -1, Y: -1}
	assert.NotEqual(t, c[0], d.Corners()[0], "Corners must return a copy")

	round, err := NewGenerator(nil, NewSource(1)).Descriptor(Circle, 100)
	require.NoError(t, err)
	assert.Nil(t, round.Corners())
}

func TestDescriptor_Validate(t *testing.T) {
	d := Descriptor{Type: Circle, ClassID: 1, Size: 100, Geometry: PolygonGeometry{}}
	assert.Error(t, d.Validate())

	d = Descriptor{Type: Square, ClassID: 6, Size: 100, Geometry: PolygonGeometry{
		Corners: []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	}}
	assert.Error(t, d.Validate(), "open polygon")
}

func TestLineWidth(t *testing.T) {
	assert.Equal(t, 1, LineWidth(10))
	assert.Equal(t, 1, LineWidth(100))
	assert.Equal(t, 1, LineWidth(149))
	assert.Equal(t, 2, LineWidth(150))
	assert.Equal(t, 5, LineWidth(512))
}

func TestDescriptor_MarshalJSON(t *testing.T) {
	d, err := NewGenerator(nil, NewSource(2)).Descriptor(Circle, 100)
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "circle", out["type"])
	assert.Equal(t, "round", out["category"])
	assert.Contains(t, out, "center")
	assert.NotContains(t, out, "corners")
}

func TestDescriptor_UnmarshalJSON(t *testing.T) {
	scene, err := NewGenerator(nil, NewSource(5)).Scene([]ShapeType{Star, Ellipse}, 80)
	require.NoError(t, err)

	data, err := json.Marshal(scene)
	require.NoError(t, err)

	var back Scene
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, scene, back)
}

func TestDescriptor_UnmarshalJSONErrors(t *testing.T) {
	var d Descriptor
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"type":"blob"}`), &d), ErrInvalidShapeType)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"type":"circle","class_id":1,"nominal_size":10}`), &d), ErrDegenerateGeometry)
	assert.Error(t, json.Unmarshal([]byte(`{"type":"square","class_id":6,"nominal_size":10,"corners":[{"x":0,"y":0}]}`), &d))
}

func TestDescriptor_UnmarshalJSONLeavesTargetOnError(t *testing.T) {
	d, err := NewGenerator(nil, NewSource(3)).Descriptor(Triangle, 50)
	require.NoError(t, err)
	before := d

	bad := `{"type":"square","class_id":6,"nominal_size":10,"corners":[{"x":0,"y":0}]}`
	require.Error(t, json.Unmarshal([]byte(bad), &d))
	assert.Equal(t, before, d)

	require.Error(t, json.Unmarshal([]byte(`{"type":"circle","class_id":1,"nominal_size":10}`), &d))
	assert.Equal(t, before, d)
}
