package nativeplate

import (
	"math"
	"math/rand"

	"planetgen/internal/grid"
)

// FakeDriver is a deterministic in-process stand-in for the native solver,
// used by tests and by callers running without the shared library installed.
// It produces a plausible heightmap (radial continent blobs grown from
// random seed points, in the spirit of a plate-tectonics solver's coarse
// output) and a plate map via nearest-seed assignment, without attempting to
// reproduce the solver's actual physics.
type FakeDriver struct{}

func (FakeDriver) Create(params CreateParams) (Handle, error) {
	return &fakeHandle{params: params}, nil
}

type fakeHandle struct {
	params CreateParams
	ran    bool
}

func (h *fakeHandle) RunToCompletion() error {
	h.ran = true
	return nil
}

type plateSeed struct {
	x, y float64
}

func (h *fakeHandle) Extract() (Extraction, error) {
	p := h.params
	rng := rand.New(rand.NewSource(p.Seed))

	seeds := make([]plateSeed, p.NumPlates)
	for i := range seeds {
		seeds[i] = plateSeed{
			x: rng.Float64() * float64(p.Width),
			y: rng.Float64() * float64(p.Height),
		}
	}

	heightmap := grid.NewHeightmap(p.Width, p.Height)
	plates := grid.NewPlateMap(p.Width, p.Height)

	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			nearest, nearestDist, second := 0, math.MaxFloat64, math.MaxFloat64
			for i, s := range seeds {
				dx, dy := float64(x)-s.x, float64(y)-s.y
				d := math.Hypot(dx, dy)
				if d < nearestDist {
					nearest, second, nearestDist = i, nearestDist, d
				} else if d < second {
					second = d
				}
			}
			plates.Values[y*p.Width+x] = uint32(nearest)

			// Elevation: higher near plate centers, lower near boundaries
			// (where two plates' influence is close), giving the downstream
			// noise/elevation post-processing something structured to work
			// with rather than pure noise.
			boundaryProximity := 0.0
			if second-nearestDist < 3.0 {
				boundaryProximity = 1.0 - (second-nearestDist)/3.0
			}
			base := 0.5 + 0.3*math.Sin(nearestDist*0.05) - 0.4*boundaryProximity
			heightmap.Values[y*p.Width+x] = clamp01(base)
		}
	}

	kinematics := make([]Kinematics, p.NumPlates)
	for i, s := range seeds {
		angle := rng.Float64() * 2 * math.Pi
		mag := 0.1 + rng.Float64()*0.9
		kinematics[i] = Kinematics{
			PlateID:           uint32(i),
			VelocityUnitX:     math.Cos(angle),
			VelocityUnitY:     math.Sin(angle),
			VelocityMagnitude: mag,
			MassCenterX:       s.x,
			MassCenterY:       s.y,
		}
	}

	return Extraction{Heightmap: heightmap, Plates: plates, Kinematics: kinematics}, nil
}

func (h *fakeHandle) Close() error { return nil }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
