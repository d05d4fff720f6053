package detection

import (
	"math"
	"sort"

	"github.com/ironsheep/shapegen/internal/raster"
)

// Centroid is the mean pixel position of an instance, rounded to 0.01.
type Centroid struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Instance summarizes one visible shape instance of a rasterized scene.
type Instance struct {
	// ID is the compacted instance id (1..K).
	ID int `json:"id"`

	// DrawIndex is the 1-based position of the shape in its scene.
	DrawIndex int `json:"draw_index"`

	// ClassID is the class id painted under this instance.
	ClassID int `json:"class_id"`

	// Area is the number of visible pixels.
	Area int `json:"area"`

	// Bounds encloses every visible pixel.
	Bounds Bounds `json:"bounds"`

	// Centroid is the mean visible pixel position.
	Centroid Centroid `json:"centroid"`

	// Fragments counts the 8-connected pieces left visible. Values above 1
	// mean later shapes cut this one apart.
	Fragments int `json:"fragments"`
}

// InstancesResult lists every visible instance.
type InstancesResult struct {
	// Instances are sorted by ID.
	Instances []Instance `json:"instances"`

	// Count is K, the number of visible instances.
	Count int `json:"count"`

	// Hidden lists draw indexes of shapes covered entirely by later shapes.
	Hidden []int `json:"hidden"`
}

// Instances measures every visible instance in layers.
//
// sceneLen is the number of shapes that were drawn; draw indexes absent from
// layers.Remap are reported as hidden.
func Instances(layers *raster.Layers, sceneLen int) *InstancesResult {
	grid := layers.Instances
	type accum struct {
		area       int
		sumX, sumY float64
		b          Bounds
	}
	acc := make(map[int]*accum)

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			id := grid.Pix[y*grid.Width+x]
			if id == 0 {
				continue
			}
			a, ok := acc[id]
			if !ok {
				a = &accum{b: Bounds{X1: x, Y1: y, X2: x, Y2: y}}
				acc[id] = a
			}
			a.area++
			a.sumX += float64(x)
			a.sumY += float64(y)
			if x < a.b.X1 {
				a.b.X1 = x
			}
			if x > a.b.X2 {
				a.b.X2 = x
			}
			if y > a.b.Y2 {
				a.b.Y2 = y
			}
		}
	}

	drawIndex := make(map[int]int, len(layers.Remap))
	for raw, id := range layers.Remap {
		drawIndex[id] = raw
	}

	result := &InstancesResult{Instances: make([]Instance, 0, len(acc)), Hidden: make([]int, 0)}
	for id, a := range acc {
		result.Instances = append(result.Instances, Instance{
			ID:        id,
			DrawIndex: drawIndex[id],
			ClassID:   layers.InstanceClasses[id],
			Area:      a.area,
			Bounds:    a.b,
			Centroid: Centroid{
				X: math.Round(a.sumX/float64(a.area)*100) / 100,
				Y: math.Round(a.sumY/float64(a.area)*100) / 100,
			},
			Fragments: len(Regions(grid, id)),
		})
	}
	sort.Slice(result.Instances, func(i, j int) bool {
		return result.Instances[i].ID < result.Instances[j].ID
	})
	result.Count = len(result.Instances)

	for i := 1; i <= sceneLen; i++ {
		if _, ok := layers.Remap[i]; !ok {
			result.Hidden = append(result.Hidden, i)
		}
	}
	return result
}
