package elevation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetgen/internal/grid"
)

func TestAddNoiseZeroAmplitudeIsNoOp(t *testing.T) {
	h := grid.NewHeightmap(8, 8)
	for i := range h.Values {
		h.Values[i] = 0.5
	}
	before := append([]float64(nil), h.Values...)

	AddNoise(h, 42, 0.1, 0)

	assert.Equal(t, before, h.Values)
}

func TestAddNoiseDeterministic(t *testing.T) {
	mk := func() *grid.Heightmap {
		h := grid.NewHeightmap(8, 8)
		for i := range h.Values {
			h.Values[i] = 0.5
		}
		AddNoise(h, 42, 0.1, 0.2)
		return h
	}
	a, b := mk(), mk()
	require.Equal(t, a.Values, b.Values)
}

func TestPlaceOceansAtBordersIdempotent(t *testing.T) {
	h := grid.NewHeightmap(5, 5)
	for i := range h.Values {
		h.Values[i] = 0.9
	}

	PlaceOceansAtBorders(h, 0.2)
	once := append([]float64(nil), h.Values...)
	PlaceOceansAtBorders(h, 0.2)

	require.Equal(t, once, h.Values)

	for x := 0; x < h.Width; x++ {
		assert.LessOrEqual(t, h.Get(x, 0), 0.2)
		assert.LessOrEqual(t, h.Get(x, h.Height-1), 0.2)
	}
	for y := 0; y < h.Height; y++ {
		assert.LessOrEqual(t, h.Get(0, y), 0.2)
		assert.LessOrEqual(t, h.Get(h.Width-1, y), 0.2)
	}
	// interior untouched
	assert.Equal(t, 0.9, h.Get(2, 2))
}

// S4. Border ocean: H = 0.3 on border, 0.9 interior, sea_level = 0.5.
func TestFillOceanBorderScenario(t *testing.T) {
	h := grid.NewHeightmap(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x == 0 || x == 4 || y == 0 || y == 4 {
				h.Set(x, y, 0.3)
			} else {
				h.Set(x, y, 0.9)
			}
		}
	}

	ocean := FillOcean(h, 0.5)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			isBorder := x == 0 || x == 4 || y == 0 || y == 4
			assert.Equal(t, isBorder, ocean.Get(x, y), "cell (%d,%d)", x, y)
		}
	}

	depth := ComputeSeaDepth(h, ocean, 0.5)
	assert.Equal(t, 0.0, depth.Get(2, 2))
	assert.Greater(t, depth.Get(0, 0), 0.0)
}

// S5. Landlocked lake is not ocean.
func TestFillOceanLandlockedLake(t *testing.T) {
	h := grid.NewHeightmap(5, 5)
	for i := range h.Values {
		h.Values[i] = 0.8
	}
	h.Set(2, 2, 0.3)

	ocean := FillOcean(h, 0.5)

	for _, v := range ocean.Values {
		assert.False(t, v)
	}
}

func TestComputeSeaDepthLandIsZero(t *testing.T) {
	h := grid.NewHeightmap(3, 3)
	for i := range h.Values {
		h.Values[i] = 0.9
	}
	ocean := grid.NewBoolGrid(3, 3)
	depth := ComputeSeaDepth(h, ocean, 0.5)
	for _, v := range depth.Values {
		assert.Equal(t, 0.0, v)
	}
}
