package hydrology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetgen/internal/grid"
)

func allLand(w, h int) *grid.BoolGrid {
	return grid.NewBoolGrid(w, h)
}

// S2. Diagonal slope: H[y,x] = 5 - x - y on 3x3, all-land.
// Expect F[1,1] = 3 (SE), F[0,0] = 3, F[2,2] = -1 (global minimum).
func TestComputeFlowDirectionsDiagonalSlope(t *testing.T) {
	h := grid.NewHeightmap(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			h.Set(x, y, 5-float64(x)-float64(y))
		}
	}
	ocean := allLand(3, 3)

	flow := ComputeFlowDirections(h, ocean)

	assert.Equal(t, int8(3), flow.Get(1, 1))
	assert.Equal(t, int8(3), flow.Get(0, 0))
	assert.Equal(t, Sink, flow.Get(2, 2))
}

// S3. Flat land: H = 2.0 uniform, no ocean. Expect F = -1 everywhere.
func TestComputeFlowDirectionsFlatLand(t *testing.T) {
	h := grid.NewHeightmap(4, 4)
	for i := range h.Values {
		h.Values[i] = 2.0
	}
	ocean := allLand(4, 4)

	flow := ComputeFlowDirections(h, ocean)
	for _, v := range flow.Values {
		assert.Equal(t, Sink, v)
	}
}

// S1. 3x3 pit never becomes a river: H = uniform(3.0) with H[1,1] = 1.0.
// Expect F[1,1] = -1; surrounding cells all flow toward (1,1).
func TestComputeFlowDirectionsCenterPit(t *testing.T) {
	h := grid.NewHeightmap(3, 3)
	for i := range h.Values {
		h.Values[i] = 3.0
	}
	h.Set(1, 1, 1.0)
	ocean := allLand(3, 3)

	flow := ComputeFlowDirections(h, ocean)
	assert.Equal(t, Sink, flow.Get(1, 1))

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x == 1 && y == 1 {
				continue
			}
			dir := flow.Get(x, y)
			require.NotEqual(t, Sink, dir)
			nx, ny := x+Offset[dir][0], y+Offset[dir][1]
			assert.Equal(t, 1, nx)
			assert.Equal(t, 1, ny)
		}
	}
}

func TestFillPitsNeverLowersCells(t *testing.T) {
	h := grid.NewHeightmap(3, 3)
	for i := range h.Values {
		h.Values[i] = 3.0
	}
	h.Set(1, 1, 1.0)
	ocean := allLand(3, 3)

	result := FillPits(h, ocean, 42, 9, 0.02)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.GreaterOrEqual(t, result.Filled.Get(x, y), h.Get(x, y))
		}
	}
}

func TestFillPitsIdempotent(t *testing.T) {
	width, height := 5, 5
	h := grid.NewHeightmap(width, height)
	ocean := grid.NewBoolGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || x == width-1 || y == 0 || y == height-1 {
				h.Set(x, y, 0.1)
				ocean.Set(x, y, true)
			} else {
				h.Set(x, y, 3.0)
			}
		}
	}
	h.Set(2, 2, 1.0) // landlocked pit, thresholds high below so it gets silently filled

	once := FillPits(h, ocean, 1, 1000, 10)
	twice := FillPits(once.Filled, ocean, 1, 1000, 10)

	require.Equal(t, once.Filled.Values, twice.Filled.Values)
	assert.Greater(t, once.Filled.Get(2, 2), h.Get(2, 2))
}

func TestComputeAccumulationConservation(t *testing.T) {
	h := grid.NewHeightmap(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			h.Set(x, y, float64(10-x-y))
		}
	}
	ocean := grid.NewBoolGrid(4, 4)
	ocean.Set(3, 3, true)

	flow := ComputeFlowDirections(h, ocean)
	source := grid.NewFloatGrid(4, 4)
	for i := range source.Values {
		source.Values[i] = 1.0
	}

	acc := ComputeAccumulation(flow, source)

	var totalSource, totalAtTerminals float64
	for i := range source.Values {
		totalSource += source.Values[i]
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if flow.Get(x, y) == Sink {
				totalAtTerminals += acc.Get(x, y)
			}
		}
	}
	assert.InDelta(t, totalSource, totalAtTerminals, 1e-9)
}

func TestDetectRiverSourcesRespectsSpacing(t *testing.T) {
	width, height := 10, 10
	filled := grid.NewHeightmap(width, height)
	ocean := grid.NewBoolGrid(width, height)
	acc := grid.NewFloatGrid(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			filled.Set(x, y, 1.0) // above mountain level
		}
	}
	// Two candidate sources close together, one far away.
	acc.Set(1, 1, 100)
	acc.Set(2, 1, 100)
	acc.Set(9, 9, 100)

	sources := DetectRiverSources(filled, ocean, acc, SourceParams{
		MountainLevel: 0.5,
		Threshold:     50,
		MinSpacing:    4,
	})

	require.Len(t, sources, 2)
	assert.Equal(t, Source{X: 1, Y: 1}, sources[0])
	assert.Equal(t, Source{X: 9, Y: 9}, sources[1])
}
