package hydrology

import "planetgen/internal/grid"

// ComputeAccumulation implements §4.7.3: given flow directions on the filled
// heightmap and a per-cell source term, it routes contributions downstream
// via Kahn's-algorithm-style topological processing (in-degree zero queue),
// which naturally respects the DAG flow directions induce.
func ComputeAccumulation(flow *grid.Int8Grid, source *grid.FloatGrid) *grid.FloatGrid {
	width, height := flow.Width, flow.Height
	acc := grid.NewFloatGrid(width, height)
	inDegree := make([]int, width*height)
	idx := func(x, y int) int { return y*width + x }

	downstream := func(x, y int) (int, int, bool) {
		dir := flow.Get(x, y)
		if dir == Sink {
			return 0, 0, false
		}
		return x + Offset[dir][0], y + Offset[dir][1], true
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if dx, dy, ok := downstream(x, y); ok {
				inDegree[idx(dx, dy)]++
			}
		}
	}

	queue := make([]int, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if inDegree[idx(x, y)] == 0 {
				queue = append(queue, idx(x, y))
			}
		}
	}

	for qi := 0; qi < len(queue); qi++ {
		i := queue[qi]
		x, y := i%width, i/width

		acc.Values[i] += source.Get(x, y)

		if dx, dy, ok := downstream(x, y); ok {
			di := idx(dx, dy)
			acc.Values[di] += acc.Values[i]
			inDegree[di]--
			if inDegree[di] == 0 {
				queue = append(queue, di)
			}
		}
	}

	return acc
}
