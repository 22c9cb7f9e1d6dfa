// Package config loads the default tuning knobs for a Generate run from a
// TOML file, falling back to the documented in-code defaults when no file is
// given or a field is left unset.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Defaults mirrors the tunable subset of GenerationParams. Seed, Width,
// Height, and PlateCount are deliberately excluded: those are per-run
// arguments, not defaults a config file should pin.
type Defaults struct {
	SeaLevel             float64 `toml:"sea_level"`
	OceanBorderReduction float64 `toml:"ocean_border_reduction"`

	NoiseScale     float64 `toml:"noise_scale"`
	NoiseAmplitude float64 `toml:"noise_amplitude"`

	AxialTiltNormalized float64 `toml:"axial_tilt_normalized"`
	DistanceToSun       float64 `toml:"distance_to_sun"`
	MountainLevel       float64 `toml:"mountain_level"`
	GammaCurve          float64 `toml:"gamma_curve"`
	CurveOffset         float64 `toml:"curve_offset"`

	CycleCount     int     `toml:"cycle_count"`
	FoldingRatio   float64 `toml:"folding_ratio"`
	ErosionPeriod  int     `toml:"erosion_period"`
	AggrOverlapAbs int     `toml:"aggr_overlap_abs"`
	AggrOverlapRel float64 `toml:"aggr_overlap_rel"`

	MinBasinArea         int     `toml:"min_basin_area"`
	MinBasinDepth        float64 `toml:"min_basin_depth"`
	RiverSourceThreshold float64 `toml:"river_source_threshold"`
	MinSourceSpacing     int     `toml:"min_source_spacing"`
}

// DefaultDefaults is what Load returns when path is empty, matching
// worldgen.DefaultParams's numeric values so a missing config file and an
// empty one behave identically.
func DefaultDefaults() Defaults {
	return Defaults{
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
		RiverSourceThreshold: 0,
		MinSourceSpacing:     4,
	}
}

// Load decodes a TOML file at path into Defaults, starting from
// DefaultDefaults so fields absent from the file keep their documented
// value. An empty path returns DefaultDefaults unchanged.
func Load(path string) (Defaults, error) {
	d := DefaultDefaults()
	if path == "" {
		return d, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return d, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := toml.DecodeReader(f, &d); err != nil {
		return d, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return d, nil
}
