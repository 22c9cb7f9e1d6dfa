package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetgen/internal/grid"
)

func TestComputeTemperatureNormalized(t *testing.T) {
	h := grid.NewHeightmap(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			h.Set(x, y, 0.4)
		}
	}
	p := Params{Seed: 9, AxialTiltNormalized: 0.5, DistanceToSun: 1.0, MountainLevel: 0.7, MaxElevation: 1.0}

	field := ComputeTemperature(h, p)

	min, max := field.Values[0], field.Values[0]
	for _, v := range field.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	assert.InDelta(t, 0.0, min, 1e-6)
	assert.InDelta(t, 1.0, max, 1e-6)
}

func TestComputeBasePrecipitationInUnitRange(t *testing.T) {
	h := grid.NewHeightmap(12, 12)
	p := Params{Seed: 3, AxialTiltNormalized: 0.5, DistanceToSun: 1.0, MountainLevel: 0.7, GammaCurve: 1.25, CurveOffset: 0.2, MaxElevation: 1.0}
	temp := ComputeTemperature(h, p)

	base := ComputeBasePrecipitation(temp, p)
	for _, v := range base.Values {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestPrevailingWindBands(t *testing.T) {
	require.Equal(t, Wind{X: -1, Y: 0}, PrevailingWind(0.1))
	require.Equal(t, Wind{X: 1, Y: 0}, PrevailingWind(0.5))
	require.Equal(t, Wind{X: -1, Y: 0}, PrevailingWind(0.9))
}

// S6. Rain shadow at mid-latitudes: 4x5 grid, all cells at sea level except
// one mountain at (x=1, y=2); Westerlies band at y=2 blow eastward, so a cell
// downwind (east) of the mountain should see reduced precipitation while a
// cell upwind (west) should be unaffected.
func TestApplyRainShadowScenario(t *testing.T) {
	width, height := 4, 5
	h := grid.NewHeightmap(width, height)
	seaLevel := 0.5
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			h.Set(x, y, seaLevel)
		}
	}
	maxElevation := 1.0
	h.Set(1, 2, seaLevel+0.05*(maxElevation-seaLevel)+0.01) // just above tau

	ocean := grid.NewBoolGrid(width, height)
	base := grid.NewFloatGrid(width, height)
	for i := range base.Values {
		base.Values[i] = 1.0
	}

	rs := ApplyRainShadow(base, h, ocean, seaLevel, maxElevation)

	// y=2 is within the Westerlies band (1/3 <= phi <= 2/3 for height=5 => phi=2/4=0.5).
	assert.InDelta(t, 0.95, rs.Get(3, 2), 1e-6) // downwind (east) of mountain at x=1
	assert.InDelta(t, 1.0, rs.Get(0, 2), 1e-6)  // upwind (west) of mountain, unaffected
}

func TestApplyCoastalMoistureMonotoneInDistance(t *testing.T) {
	width, height := 20, 3
	h := grid.NewHeightmap(width, height)
	ocean := grid.NewBoolGrid(width, height)
	ocean.Set(0, 1, true)

	rs := grid.NewFloatGrid(width, height)
	for i := range rs.Values {
		rs.Values[i] = 1.0
	}

	final := ApplyCoastalMoisture(rs, ocean, h)

	near := final.Get(1, 1)
	far := final.Get(10, 1)
	assert.GreaterOrEqual(t, near, far)
	assert.GreaterOrEqual(t, near, 1.0)
	assert.GreaterOrEqual(t, far, 1.0)
}

func TestApplyCoastalMoistureOceanUnchanged(t *testing.T) {
	width, height := 5, 5
	h := grid.NewHeightmap(width, height)
	ocean := grid.NewBoolGrid(width, height)
	ocean.Set(2, 2, true)

	rs := grid.NewFloatGrid(width, height)
	rs.Set(2, 2, 0.42)

	final := ApplyCoastalMoisture(rs, ocean, h)
	assert.Equal(t, 0.42, final.Get(2, 2))
}
