package hydrology

import (
	"sort"

	"planetgen/internal/grid"
)

// Source is a river-source cell, recorded with its raster order so the
// pipeline can expose RiverSources as an ordered, deterministic list.
type Source struct {
	X, Y int
}

// SourceParams bundles the tuning knobs §4.7.4 and §9 leave open.
// Threshold <= 0 selects the p98 of land accumulation, computed from the
// run's own data, as the specification suggests ("a high percentile ...
// e.g. p98") when the caller hasn't pinned an absolute value.
type SourceParams struct {
	MountainLevel float64
	Threshold     float64
	MinSpacing    int
}

// DetectRiverSources implements §4.7.4: land cells at or above mountain
// level whose precipitation-weighted accumulation crosses the threshold,
// enumerated in raster order with first-come-first-served spacing
// enforcement so the resulting set is deterministic.
func DetectRiverSources(filled *grid.Heightmap, ocean *grid.BoolGrid, accPrecip *grid.FloatGrid, params SourceParams) []Source {
	threshold := params.Threshold
	if threshold <= 0 {
		threshold = percentileOverLand(accPrecip, ocean, 0.98)
	}

	var sources []Source
	for y := 0; y < filled.Height; y++ {
		for x := 0; x < filled.Width; x++ {
			if ocean.Get(x, y) {
				continue
			}
			if filled.Get(x, y) < params.MountainLevel {
				continue
			}
			if accPrecip.Get(x, y) < threshold {
				continue
			}
			if tooClose(sources, x, y, params.MinSpacing) {
				continue
			}
			sources = append(sources, Source{X: x, Y: y})
		}
	}

	return sources
}

func tooClose(sources []Source, x, y, minSpacing int) bool {
	for _, s := range sources {
		dx, dy := s.X-x, s.Y-y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		chebyshev := dx
		if dy > chebyshev {
			chebyshev = dy
		}
		if chebyshev < minSpacing {
			return true
		}
	}
	return false
}

// percentileOverLand computes the p-th percentile (0..1) of accumulation
// values over land cells via a full sort. The corpus's statistics library
// (GaryBoone/GoStats) exposes only linear regression and min/max, not a
// percentile function, so this one case falls back to the standard library
// rather than risk an invented API (see DESIGN.md).
func percentileOverLand(acc *grid.FloatGrid, ocean *grid.BoolGrid, p float64) float64 {
	values := make([]float64, 0, len(acc.Values))
	for y := 0; y < acc.Height; y++ {
		for x := 0; x < acc.Width; x++ {
			if ocean.Get(x, y) {
				continue
			}
			values = append(values, acc.Get(x, y))
		}
	}
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	i := int(p * float64(len(values)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(values) {
		i = len(values) - 1
	}
	return values[i]
}
