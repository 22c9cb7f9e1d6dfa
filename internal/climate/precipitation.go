package climate

import (
	"math"

	"planetgen/internal/grid"
	"planetgen/internal/noise"
)

// ComputeBasePrecipitation implements C4: wrap-aware coherent noise shaped by
// a temperature-driven gamma curve, rescaled to [-1,1] and then mapped to
// [0,1] for downstream consumers.
func ComputeBasePrecipitation(t *grid.FloatGrid, p Params) *grid.FloatGrid {
	raw := grid.NewFloatGrid(t.Width, t.Height)
	field := noise.New(p.Seed, noise.PrecipSalt, 2, 2, 6)

	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			raw.Set(x, y, field.WrapX(float64(x), float64(y), t.Width, wrapBorder))
		}
	}
	normalizeInPlace(raw) // p_raw normalized to [0,1]

	shaped := grid.NewFloatGrid(t.Width, t.Height)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			shape := math.Pow(t.Get(x, y), p.GammaCurve)*(1-p.CurveOffset) + p.CurveOffset
			shaped.Set(x, y, raw.Get(x, y)*shape)
		}
	}

	rescaleToSignedThenUnit(shaped)
	return shaped
}

// rescaleToSignedThenUnit rescales values linearly to [-1,1] and then maps
// that range onto [0,1], matching §4.4 step 4.
func rescaleToSignedThenUnit(g *grid.FloatGrid) {
	if len(g.Values) == 0 {
		return
	}
	min, max := g.Values[0], g.Values[0]
	for _, v := range g.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	for i, v := range g.Values {
		var signed float64
		if span == 0 {
			signed = 0
		} else {
			signed = ((v-min)/span)*2 - 1
		}
		g.Values[i] = (signed + 1) / 2
	}
}
