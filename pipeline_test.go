package worldgen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planetgen/internal/nativeplate"
)

func testParams() GenerationParams {
	p := DefaultParams(7, 12, 12, 6)
	return p
}

func TestGenerateProducesConsistentShapes(t *testing.T) {
	gen := NewGenerator(WithPlateDriver(&nativeplate.FakeDriver{}))
	params := testParams()

	result, err := gen.Generate(context.Background(), params)
	require.NoError(t, err)

	cellCount := params.Width * params.Height
	assert.Len(t, result.Heightmap, cellCount)
	assert.Len(t, result.FilledHeightmap, cellCount)
	assert.Len(t, result.Plates, cellCount)
	assert.Len(t, result.OceanMask, cellCount)
	assert.Len(t, result.SeaDepth, cellCount)
	assert.Len(t, result.Temperature, cellCount)
	assert.Len(t, result.PrecipitationBase, cellCount)
	assert.Len(t, result.PrecipitationRainShadow, cellCount)
	assert.Len(t, result.PrecipitationFinal, cellCount)
	assert.Len(t, result.FlowDirections, cellCount)
	assert.Len(t, result.FlowAccumulation, cellCount)
	assert.Equal(t, params.PlateCount, len(result.Kinematics))
}

func TestGenerateIsDeterministic(t *testing.T) {
	params := testParams()

	gen1 := NewGenerator(WithPlateDriver(&nativeplate.FakeDriver{}))
	r1, err := gen1.Generate(context.Background(), params)
	require.NoError(t, err)

	gen2 := NewGenerator(WithPlateDriver(&nativeplate.FakeDriver{}))
	r2, err := gen2.Generate(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, r1.Heightmap, r2.Heightmap)
	assert.Equal(t, r1.FilledHeightmap, r2.FilledHeightmap)
	assert.Equal(t, r1.Plates, r2.Plates)
	assert.Equal(t, r1.OceanMask, r2.OceanMask)
	assert.Equal(t, r1.Temperature, r2.Temperature)
	assert.Equal(t, r1.PrecipitationFinal, r2.PrecipitationFinal)
	assert.Equal(t, r1.FlowDirections, r2.FlowDirections)
	assert.Equal(t, r1.FlowAccumulation, r2.FlowAccumulation)
	assert.Equal(t, r1.RiverSources, r2.RiverSources)

	require.Equal(t, len(r1.PreservedBasins), len(r2.PreservedBasins))
	for i := range r1.PreservedBasins {
		assert.Equal(t, r1.PreservedBasins[i].BasinID, r2.PreservedBasins[i].BasinID)
	}
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	gen := NewGenerator(WithPlateDriver(&nativeplate.FakeDriver{}))
	params := testParams()
	params.Width = 0

	_, err := gen.Generate(context.Background(), params)
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ErrInvalidParams, genErr.Kind)
}

func TestGenerateRespectsCancellation(t *testing.T) {
	gen := NewGenerator(WithPlateDriver(&nativeplate.FakeDriver{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, testParams())
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ErrCancelled, genErr.Kind)
}

func TestGenerateTemperatureIsNormalized(t *testing.T) {
	gen := NewGenerator(WithPlateDriver(&nativeplate.FakeDriver{}))
	result, err := gen.Generate(context.Background(), testParams())
	require.NoError(t, err)

	min, max := result.Temperature[0], result.Temperature[0]
	for _, v := range result.Temperature {
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
