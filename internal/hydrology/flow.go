// Package hydrology computes D-8 steepest-descent flow directions, fills
// pits with preserved-basin metadata, accumulates flow, and detects river
// sources from precipitation-weighted accumulation.
package hydrology

import (
	"math"

	"planetgen/internal/grid"
)

// Offset encodes the 8 compass directions used by D-8 flow, in the exact
// index order the specification fixes as the deterministic tie-break order:
// 0=N 1=NE 2=E 3=SE 4=S 5=SW 6=W 7=NW.
var Offset = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Sink is the flow-direction value for a terminal cell (ocean or local
// minimum).
const Sink int8 = -1

var distanceFor = [8]float64{1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2}

// ComputeFlowDirections implements §4.7.1: ocean cells are always terminal;
// land cells drain to the neighbour with maximum steepest descent, with ties
// broken by lowest direction index, and cells with no strictly-lower
// neighbour are sinks.
func ComputeFlowDirections(h *grid.Heightmap, ocean *grid.BoolGrid) *grid.Int8Grid {
	flow := grid.NewInt8Grid(h.Width, h.Height, 0)

	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			if ocean.Get(x, y) {
				flow.Set(x, y, Sink)
				continue
			}
			flow.Set(x, y, steepestDescent(h, x, y))
		}
	}

	return flow
}

func steepestDescent(h *grid.Heightmap, x, y int) int8 {
	here := h.Get(x, y)
	best := Sink
	bestSlope := 0.0

	for dir := 0; dir < 8; dir++ {
		nx, ny := x+Offset[dir][0], y+Offset[dir][1]
		if nx < 0 || nx >= h.Width || ny < 0 || ny >= h.Height {
			continue
		}
		there := h.Get(nx, ny)
		if there >= here {
			continue
		}
		slope := (here - there) / distanceFor[dir]
		if best == Sink || slope > bestSlope {
			best = int8(dir)
			bestSlope = slope
		}
	}

	return best
}
