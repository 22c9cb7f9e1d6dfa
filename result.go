package worldgen

import (
	"planetgen/internal/grid"
	"planetgen/internal/hydrology"
	"planetgen/internal/nativeplate"
)

// PlateKinematics describes one plate's rigid-body motion, re-exported at the
// package boundary so callers don't need to import internal/nativeplate.
type PlateKinematics struct {
	PlateID           uint32
	VelocityUnitX     float64
	VelocityUnitY     float64
	VelocityMagnitude float64
	MassCenterX       float64
	MassCenterY       float64
}

// PreservedBasin is a depression retained as a lake rather than filled flat,
// re-exported at the package boundary.
type PreservedBasin struct {
	BasinID        string
	Cells          [][2]int
	SurfaceElevation float64
	Area           int
	CenterX        float64
	CenterY        float64
}

// RiverSource is a land cell detected as the head of a river.
type RiverSource struct {
	X, Y int
}

// WorldGenerationResult aggregates every field produced by a Generate run.
// All slices are owned, immutable from the caller's perspective, and laid
// out row-major with shape (Height, Width).
type WorldGenerationResult struct {
	Width, Height int

	Heightmap       []float64 // post-processed, pre pit-filling
	FilledHeightmap []float64

	Plates     []uint32
	Kinematics []PlateKinematics

	OceanMask []bool
	SeaDepth  []float64

	Temperature []float64

	PrecipitationBase       []float64
	PrecipitationRainShadow []float64
	PrecipitationFinal      []float64

	FlowDirections   []int8
	FlowAccumulation []float64

	RiverSources     []RiverSource
	PreservedBasins  []PreservedBasin
	PreFillingSinks  []RiverSource
}

func buildResult(
	params GenerationParams,
	h *grid.Heightmap,
	fill hydrology.FillResult,
	plates *grid.PlateMap,
	kinematics []nativeplate.Kinematics,
	ocean *grid.BoolGrid,
	seaDepth *grid.FloatGrid,
	temperature *grid.FloatGrid,
	precipBase, precipRS, precipFinal *grid.FloatGrid,
	flow *grid.Int8Grid,
	acc *grid.FloatGrid,
	sources []hydrology.Source,
) *WorldGenerationResult {
	r := &WorldGenerationResult{
		Width:  params.Width,
		Height: params.Height,

		Heightmap:       append([]float64(nil), h.Values...),
		FilledHeightmap: append([]float64(nil), fill.Filled.Values...),

		Plates: append([]uint32(nil), plates.Values...),

		OceanMask: append([]bool(nil), ocean.Values...),
		SeaDepth:  append([]float64(nil), seaDepth.Values...),

		Temperature: append([]float64(nil), temperature.Values...),

		PrecipitationBase:       append([]float64(nil), precipBase.Values...),
		PrecipitationRainShadow: append([]float64(nil), precipRS.Values...),
		PrecipitationFinal:      append([]float64(nil), precipFinal.Values...),

		FlowDirections:   append([]int8(nil), flow.Values...),
		FlowAccumulation: append([]float64(nil), acc.Values...),
	}

	r.Kinematics = make([]PlateKinematics, len(kinematics))
	for i, k := range kinematics {
		r.Kinematics[i] = PlateKinematics{
			PlateID:           k.PlateID,
			VelocityUnitX:     k.VelocityUnitX,
			VelocityUnitY:     k.VelocityUnitY,
			VelocityMagnitude: k.VelocityMagnitude,
			MassCenterX:       k.MassCenterX,
			MassCenterY:       k.MassCenterY,
		}
	}

	r.RiverSources = make([]RiverSource, len(sources))
	for i, s := range sources {
		r.RiverSources[i] = RiverSource{X: s.X, Y: s.Y}
	}

	r.PreFillingSinks = make([]RiverSource, len(fill.PreFillingSinks))
	for i, s := range fill.PreFillingSinks {
		r.PreFillingSinks[i] = RiverSource{X: s[0], Y: s[1]}
	}

	r.PreservedBasins = make([]PreservedBasin, len(fill.Basins))
	for i, b := range fill.Basins {
		r.PreservedBasins[i] = PreservedBasin{
			BasinID:          b.BasinID.String(),
			Cells:            b.Cells,
			SurfaceElevation: b.SurfaceElev,
			Area:             b.Area,
			CenterX:          b.CenterX,
			CenterY:          b.CenterY,
		}
	}

	return r
}
