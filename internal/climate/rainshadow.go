package climate

import "planetgen/internal/grid"

// Wind is a unit-ish direction vector in grid space; only its sign matters
// here (§4.5 uses (-1,0) or (+1,0)).
type Wind struct {
	X, Y int
}

// PrevailingWind returns the latitude-banded prevailing wind for normalized
// row position phi, following the three-cell circulation model: Trade Winds
// and Polar Easterlies blow westward, Westerlies blow eastward.
func PrevailingWind(phi float64) Wind {
	switch {
	case phi < 1.0/3.0:
		return Wind{X: -1, Y: 0} // Trade Winds
	case phi <= 2.0/3.0:
		return Wind{X: 1, Y: 0} // Westerlies
	default:
		return Wind{X: -1, Y: 0} // Polar Easterlies
	}
}

// ApplyRainShadow implements C5: for every land cell, it walks upwind
// counting mountain cells above threshold tau and attenuates precipitation by
// an accumulative, capped blocking factor. Ocean cells pass through
// unchanged.
func ApplyRainShadow(base *grid.FloatGrid, h *grid.Heightmap, ocean *grid.BoolGrid, seaLevel, maxElevation float64) *grid.FloatGrid {
	out := grid.NewFloatGrid(base.Width, base.Height)
	tau := 0.05 * (maxElevation - seaLevel)

	for y := 0; y < base.Height; y++ {
		phi := 0.0
		if base.Height > 1 {
			phi = float64(y) / float64(base.Height-1)
		}
		wind := PrevailingWind(phi)
		// Upwind direction: the direction from which air arrives, i.e. the
		// opposite of where the wind blows to.
		ux, uy := -wind.X, -wind.Y

		for x := 0; x < base.Width; x++ {
			if ocean.Get(x, y) {
				out.Set(x, y, base.Get(x, y))
				continue
			}

			k := 0
			cx, cy := x, y
			for step := 0; step < base.Width-1; step++ {
				cx += ux
				cy += uy
				if cx < 0 || cx >= base.Width || cy < 0 || cy >= base.Height {
					break
				}
				if h.Get(cx, cy)-seaLevel > tau {
					k++
				}
			}

			beta := 0.05 * float64(k)
			if beta > 0.80 {
				beta = 0.80
			}
			out.Set(x, y, base.Get(x, y)*(1-beta))
		}
	}

	return out
}
