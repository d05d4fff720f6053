package raster

// Compact remaps the distinct nonzero labels of g to the dense range 1..K in
// order of first appearance (row-major scan). Background stays 0. It returns
// a new grid and the old-to-new mapping; g is not modified.
func Compact(g *LabelGrid) (*LabelGrid, map[int]int) {
	out := NewLabelGrid(g.Width, g.Height)
	remap := make(map[int]int)
	next := 1
	for i, v := range g.Pix {
		if v == 0 {
			continue
		}
		id, ok := remap[v]
		if !ok {
			id = next
			remap[v] = id
			next++
		}
		out.Pix[i] = id
	}
	return out, remap
}
