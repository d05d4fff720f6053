package detection

import (
	"fmt"

	"github.com/ironsheep/shapegen/internal/raster"
)

// maxProblems caps the problems a Report lists.
const maxProblems = 20

// Report is the result of checking a pair of instance and class masks.
type Report struct {
	// Consistent is true when no problem was found.
	Consistent bool `json:"consistent"`

	// Problems describes each violation found, up to a fixed limit.
	Problems []string `json:"problems"`

	// InstanceClasses maps each instance id to the class painted under it.
	InstanceClasses map[int]int `json:"instance_classes"`
}

func (r *Report) addf(format string, args ...interface{}) {
	r.Consistent = false
	if len(r.Problems) < maxProblems {
		r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
	}
}

// Verify checks that instances and classes describe the same labeling:
// equal dimensions, background in exactly the same pixels, instance ids
// dense in 1..K, and a single class under every instance.
func Verify(instances, classes *raster.LabelGrid) *Report {
	r := &Report{Consistent: true, Problems: make([]string, 0), InstanceClasses: make(map[int]int)}
	if instances.Width != classes.Width || instances.Height != classes.Height {
		r.addf("instance mask is %dx%d, class mask is %dx%d",
			instances.Width, instances.Height, classes.Width, classes.Height)
		return r
	}

	conflict := make(map[int]bool)
	for i, id := range instances.Pix {
		class := classes.Pix[i]
		x, y := i%instances.Width, i/instances.Width
		switch {
		case id == 0 && class != 0:
			r.addf("pixel (%d,%d) has class %d but no instance", x, y, class)
		case id != 0 && class == 0:
			r.addf("pixel (%d,%d) has instance %d but no class", x, y, id)
		case id != 0:
			if prev, ok := r.InstanceClasses[id]; !ok {
				r.InstanceClasses[id] = class
			} else if prev != class && !conflict[id] {
				conflict[id] = true
				r.addf("instance %d covers classes %d and %d", id, prev, class)
			}
		}
	}

	for want, got := range instances.Values() {
		if got != want+1 {
			r.addf("instance ids are not dense: expected %d, found %d", want+1, got)
			break
		}
	}
	return r
}
