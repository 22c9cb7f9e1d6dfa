// Package climate computes the temperature and precipitation fields: a
// latitude/axial-tilt/altitude temperature simulation, noise-driven base
// precipitation shaped by temperature, latitude-banded rain-shadow blocking,
// and BFS-distance coastal moisture enhancement.
package climate

import (
	"planetgen/internal/grid"
	"planetgen/internal/noise"
)

// wrapBorder is the width, in columns, of the seam-blend band applied to
// every wrap-aware noise sample in this package (§4.3's "two-sample blend in
// the first/last border columns").
const wrapBorder = 4.0

// Params bundles the GenerationParams fields the climate stack reads, kept
// narrow so this package does not depend on the root package.
type Params struct {
	Seed                int64
	AxialTiltNormalized float64
	DistanceToSun       float64
	MountainLevel       float64
	GammaCurve          float64
	CurveOffset         float64
	SeaLevel            float64
	MaxElevation        float64
}

// ComputeTemperature implements C3: latitude factor peaking at
// AxialTiltNormalized, blended with wrap-aware coherent noise, scaled by
// inverse-square distance to the sun, with an altitude lapse rate above
// MountainLevel, and finally normalized to [0,1] across the whole field.
func ComputeTemperature(h *grid.Heightmap, p Params) *grid.FloatGrid {
	t := grid.NewFloatGrid(h.Width, h.Height)
	field := noise.New(p.Seed, noise.TemperatureSalt, 2, 2, 8)

	maxElev := p.MaxElevation
	if maxElev <= 0 {
		maxElev = 1
	}

	for y := 0; y < h.Height; y++ {
		phi := 0.0
		if h.Height > 1 {
			phi = float64(y) / float64(h.Height-1)
		}
		latitudeFactor := clamp01(triangular(phi, p.AxialTiltNormalized-0.5, p.AxialTiltNormalized, p.AxialTiltNormalized+0.5))

		for x := 0; x < h.Width; x++ {
			n := field.WrapX(float64(x), float64(y), h.Width, wrapBorder)
			base := (latitudeFactor*12 + n) / 13 / (p.DistanceToSun * p.DistanceToSun)

			elev := h.Get(x, y)
			if elev > p.MountainLevel {
				span := maxElev - p.MountainLevel
				frac := 0.0
				if span > 0 {
					frac = (elev - p.MountainLevel) / span
				}
				if frac > 1 {
					frac = 1
				}
				altitudeFactor := 1 - frac*(1-0.033)
				base *= altitudeFactor
			}

			t.Set(x, y, base)
		}
	}

	normalizeInPlace(t)
	return t
}

// triangular returns a piecewise-linear function rising from 0 at lo to 1 at
// mid and falling back to 0 at hi.
func triangular(v, lo, mid, hi float64) float64 {
	switch {
	case v <= lo || v >= hi:
		return 0
	case v <= mid:
		if mid == lo {
			return 1
		}
		return (v - lo) / (mid - lo)
	default:
		if hi == mid {
			return 1
		}
		return (hi - v) / (hi - mid)
	}
}

func normalizeInPlace(g *grid.FloatGrid) {
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
		if span == 0 {
			g.Values[i] = 0
			continue
		}
		g.Values[i] = (v - min) / span
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
