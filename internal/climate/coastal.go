package climate

import (
	"math"

	"planetgen/internal/grid"
)

var cardinalOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// DistanceToOcean computes, for every land cell, the 4-connected BFS
// distance to the nearest ocean cell via a multi-source flood-fill seeded at
// every ocean cell simultaneously (ocean cells have distance 0).
func DistanceToOcean(ocean *grid.BoolGrid) *grid.IntGrid {
	dist := grid.NewIntGrid(ocean.Width, ocean.Height, -1)

	type cell struct{ x, y int }
	queue := make([]cell, 0, ocean.Width*ocean.Height)

	for y := 0; y < ocean.Height; y++ {
		for x := 0; x < ocean.Width; x++ {
			if ocean.Get(x, y) {
				dist.Set(x, y, 0)
				queue = append(queue, cell{x, y})
			}
		}
	}

	for i := 0; i < len(queue); i++ {
		c := queue[i]
		d := dist.Get(c.x, c.y)
		for _, off := range cardinalOffsets {
			nx, ny := c.x+off[0], c.y+off[1]
			if nx < 0 || nx >= ocean.Width || ny < 0 || ny >= ocean.Height {
				continue
			}
			if dist.Get(nx, ny) != -1 {
				continue
			}
			dist.Set(nx, ny, d+1)
			queue = append(queue, cell{nx, ny})
		}
	}

	return dist
}

// ApplyCoastalMoisture implements C6: an exponential-decay bonus in distance
// to the nearest ocean cell, attenuated by elevation so high interior
// plateaus don't get an unrealistic coastal boost even when technically
// close to the sea as the crow flies.
func ApplyCoastalMoisture(rs *grid.FloatGrid, ocean *grid.BoolGrid, h *grid.Heightmap) *grid.FloatGrid {
	dist := DistanceToOcean(ocean)
	out := grid.NewFloatGrid(rs.Width, rs.Height)

	for y := 0; y < rs.Height; y++ {
		for x := 0; x < rs.Width; x++ {
			if ocean.Get(x, y) {
				out.Set(x, y, rs.Get(x, y))
				continue
			}
			d := float64(dist.Get(x, y))
			bonus := 0.80 * math.Exp(-d/30)
			elevFactor := 1 - math.Min(1, h.Get(x, y)*0.02)
			out.Set(x, y, rs.Get(x, y)*(1+bonus*elevFactor))
		}
	}

	return out
}
