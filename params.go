package worldgen

import "fmt"

// GenerationParams configures a single Generate run. It is immutable once
// passed to Generate: the pipeline never mutates it.
type GenerationParams struct {
	Seed   int64
	Width  int
	Height int

	PlateCount int

	SeaLevel             float64 // in [0,1]
	OceanBorderReduction float64

	NoiseScale     float64
	NoiseAmplitude float64

	AxialTiltNormalized float64 // in [0,1], 0.5 = peak at equator
	DistanceToSun       float64 // astronomical units, 1.0 = Earth-like
	MountainLevel       float64
	GammaCurve          float64
	CurveOffset         float64

	// Native solver tuning, passed through to NativePlateDriver.Create.
	CycleCount      int
	FoldingRatio    float64
	ErosionPeriod   int
	AggrOverlapAbs  int
	AggrOverlapRel  float64

	// Hydrology tuning knobs. §9 of the specification leaves these as open
	// questions pinned implicitly via magic numbers in the source; the
	// defaults below are documented in DESIGN.md.
	MinBasinArea         int
	MinBasinDepth        float64
	RiverSourceThreshold float64 // 0 selects the default percentile-derived threshold
	MinSourceSpacing     int
}

// DefaultParams returns a GenerationParams with every tuning knob set to its
// documented default, for callers that only want to override seed/size/plates.
func DefaultParams(seed int64, width, height, plateCount int) GenerationParams {
	return GenerationParams{
		Seed:       seed,
		Width:      width,
		Height:     height,
		PlateCount: plateCount,

		SeaLevel:             0.5,
		OceanBorderReduction: 0.1,

		NoiseScale:     0.05,
		NoiseAmplitude: 0.2,

		AxialTiltNormalized: 0.5,
		DistanceToSun:       1.0,
		MountainLevel:       0.7,
		GammaCurve:          1.25,
		CurveOffset:         0.2,

		CycleCount:     2,
		FoldingRatio:   0.02,
		ErosionPeriod:  60,
		AggrOverlapAbs: 1_000_000,
		AggrOverlapRel: 0.33,

		MinBasinArea:         9,
		MinBasinDepth:        0.02,
		RiverSourceThreshold: 0, // resolved to the p98 of land accumulation at run time
		MinSourceSpacing:     4,
	}
}

// Validate checks GenerationParams for the preconditions every component
// assumes. It is the only place InvalidParams is raised.
func (p GenerationParams) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return newError(ErrInvalidParams, fmt.Sprintf("width/height must be positive, got %dx%d", p.Width, p.Height), nil)
	case p.PlateCount <= 0:
		return newError(ErrInvalidParams, fmt.Sprintf("plate_count must be positive, got %d", p.PlateCount), nil)
	case p.SeaLevel < 0 || p.SeaLevel > 1:
		return newError(ErrInvalidParams, fmt.Sprintf("sea_level must be in [0,1], got %f", p.SeaLevel), nil)
	case p.AxialTiltNormalized < 0 || p.AxialTiltNormalized > 1:
		return newError(ErrInvalidParams, fmt.Sprintf("axial_tilt_normalized must be in [0,1], got %f", p.AxialTiltNormalized), nil)
	case p.DistanceToSun <= 0:
		return newError(ErrInvalidParams, fmt.Sprintf("distance_to_sun must be positive, got %f", p.DistanceToSun), nil)
	case p.MinBasinArea < 0:
		return newError(ErrInvalidParams, "min_basin_area must be non-negative", nil)
	case p.MinSourceSpacing < 0:
		return newError(ErrInvalidParams, "min_source_spacing must be non-negative", nil)
	}
	return nil
}
