// Package worldgen is a deterministic, seed-based procedural world generator:
// given a seed and world size, Generate composes plate tectonics, elevation
// post-processing, a climate stack, and D-8 hydrology into a single
// WorldGenerationResult.
package worldgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planetgen/internal/climate"
	"planetgen/internal/elevation"
	"planetgen/internal/grid"
	"planetgen/internal/hydrology"
	"planetgen/internal/logging"
	"planetgen/internal/nativeplate"
)

// phase names the pipeline's state machine positions (§4.8). Transitions are
// one-way; a failure at any transition surfaces a typed error and releases
// every scoped resource acquired so far.
type phase string

const (
	phaseCreated                phase = "created"
	phasePlatesRunning          phase = "plates_running"
	phasePlatesDone             phase = "plates_done"
	phaseElevationPostProcessed phase = "elevation_post_processed"
	phaseClimateComputed        phase = "climate_computed"
	phaseHydrologyComputed      phase = "hydrology_computed"
	phaseFinalized              phase = "finalized"
)

// Generator composes the pipeline's components. It holds no per-run state;
// every field is either a stateless function or an injectable collaborator
// (currently just the plate driver), so one Generator is safe to reuse
// across concurrent Generate calls — concurrency is only serialized at the
// native solver, inside nativeplate's process-wide mutex.
type Generator struct {
	plateDriver nativeplate.Driver
}

// Option configures a Generator at construction time.
type Option func(*Generator)

// WithPlateDriver overrides the native plate-tectonics driver, primarily for
// tests that want to run the full pipeline without the real shared library.
func WithPlateDriver(d nativeplate.Driver) Option {
	return func(g *Generator) { g.plateDriver = d }
}

// NewGenerator builds a Generator; with no options, it uses the real
// purego-backed native solver binding.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{plateDriver: &nativeplate.LibDriver{}}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the full pipeline to completion on the calling goroutine. ctx
// is checked at every phase boundary and wraps cancellation as ErrCancelled;
// it does not make Generate itself concurrent or asynchronous.
func (g *Generator) Generate(ctx context.Context, params GenerationParams) (*WorldGenerationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ctx, runID := logging.WithRun(ctx)
	logger := logging.FromContext(ctx)
	logger.Info().Str("run_id", runID).Int("width", params.Width).Int("height", params.Height).
		Int64("seed", params.Seed).Msg("generation started")
	start := time.Now()

	current := phaseCreated
	if err := checkCancelled(ctx, current); err != nil {
		return nil, err
	}

	// --- C1: NativePlateDriver ---
	current = phasePlatesRunning
	heightmap, plates, kinematics, err := g.runPlates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("nativeplate: %w", err)
	}
	current = phasePlatesDone
	if err := checkCancelled(ctx, current); err != nil {
		return nil, err
	}

	// --- C2: ElevationPostProcessor ---
	done := logging.Phase(ctx, "elevation")
	elevation.AddNoise(heightmap, params.Seed, params.NoiseScale, params.NoiseAmplitude)
	elevation.PlaceOceansAtBorders(heightmap, params.OceanBorderReduction)
	ocean := elevation.FillOcean(heightmap, params.SeaLevel)
	seaDepth := elevation.ComputeSeaDepth(heightmap, ocean, params.SeaLevel)
	done()
	current = phaseElevationPostProcessed
	if err := checkCancelled(ctx, current); err != nil {
		return nil, err
	}

	// --- C3-C6: climate stack ---
	done = logging.Phase(ctx, "climate")
	maxElevation := maxOf(heightmap.Values)
	climateParams := climate.Params{
		Seed:                params.Seed,
		AxialTiltNormalized: params.AxialTiltNormalized,
		DistanceToSun:       params.DistanceToSun,
		MountainLevel:       params.MountainLevel,
		GammaCurve:          params.GammaCurve,
		CurveOffset:         params.CurveOffset,
		SeaLevel:            params.SeaLevel,
		MaxElevation:        maxElevation,
	}
	temperature := climate.ComputeTemperature(heightmap, climateParams)
	precipBase := climate.ComputeBasePrecipitation(temperature, climateParams)
	precipRS := climate.ApplyRainShadow(precipBase, heightmap, ocean, params.SeaLevel, maxElevation)
	precipFinal := climate.ApplyCoastalMoisture(precipRS, ocean, heightmap)
	done()
	current = phaseClimateComputed
	if err := checkCancelled(ctx, current); err != nil {
		return nil, err
	}

	// --- C7: HydrologyCore ---
	done = logging.Phase(ctx, "hydrology")
	fill := hydrology.FillPits(heightmap, ocean, params.Seed, params.MinBasinArea, params.MinBasinDepth)
	flow := hydrology.ComputeFlowDirections(fill.Filled, ocean)
	accPrecip := hydrology.ComputeAccumulation(flow, precipFinal)
	sources := hydrology.DetectRiverSources(fill.Filled, ocean, accPrecip, hydrology.SourceParams{
		MountainLevel: params.MountainLevel,
		Threshold:     params.RiverSourceThreshold,
		MinSpacing:    params.MinSourceSpacing,
	})
	done()
	current = phaseHydrologyComputed
	if err := checkCancelled(ctx, current); err != nil {
		return nil, err
	}

	current = phaseFinalized
	result := buildResult(params, heightmap, fill, plates, kinematics, ocean, seaDepth, temperature,
		precipBase, precipRS, precipFinal, flow, accPrecip, sources)

	logger.Info().Str("phase", string(current)).Dur("total_duration_ms", time.Since(start)).
		Int("river_sources", len(result.RiverSources)).Int("preserved_basins", len(result.PreservedBasins)).
		Msg("generation completed")

	return result, nil
}

// runPlates drives C1: it acquires the scoped native handle, runs it to
// completion, and extracts owned grids, guaranteeing the handle is released
// on every exit path including the error paths below.
func (g *Generator) runPlates(ctx context.Context, params GenerationParams) (*grid.Heightmap, *grid.PlateMap, []nativeplate.Kinematics, error) {
	handle, err := g.plateDriver.Create(nativeplate.CreateParams{
		Seed:           params.Seed,
		Width:          params.Width,
		Height:         params.Height,
		SeaLevel:       params.SeaLevel,
		ErosionPeriod:  params.ErosionPeriod,
		FoldingRatio:   params.FoldingRatio,
		AggrOverlapAbs: params.AggrOverlapAbs,
		AggrOverlapRel: params.AggrOverlapRel,
		CycleCount:     params.CycleCount,
		NumPlates:      params.PlateCount,
	})
	if err != nil {
		return nil, nil, nil, mapNativeError(err)
	}
	defer handle.Close()

	if err := handle.RunToCompletion(); err != nil {
		return nil, nil, nil, mapNativeError(err)
	}

	extraction, err := handle.Extract()
	if err != nil {
		return nil, nil, nil, mapNativeError(err)
	}

	return extraction.Heightmap, extraction.Plates, extraction.Kinematics, nil
}

func mapNativeError(err error) error {
	switch {
	case errors.Is(err, nativeplate.ErrLibraryMissing):
		return newError(ErrNativeLibraryMissing, "plate solver unavailable", err)
	case errors.Is(err, nativeplate.ErrCreateFailed):
		return newError(ErrNativeCreateFailed, "plate solver rejected create", err)
	case errors.Is(err, nativeplate.ErrDidNotConverge):
		return newError(ErrNativeDidNotConverge, "plate solver exceeded step cap", err)
	default:
		return newError(ErrNativeCreateFailed, "plate solver failure", err)
	}
}

func checkCancelled(ctx context.Context, at phase) error {
	if ctx.Err() != nil {
		return newError(ErrCancelled, fmt.Sprintf("cancelled at phase %s", at), ctx.Err())
	}
	return nil
}

func maxOf(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return 1
	}
	return max
}
