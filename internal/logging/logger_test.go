package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRunAttachesRunIDAndLogger(t *testing.T) {
	InitLogger()

	ctx, runID := WithRun(context.Background())
	require.NotEmpty(t, runID)
	assert.Equal(t, runID, RunID(ctx))
	assert.NotNil(t, FromContext(ctx))
}

func TestRunIDEmptyWithoutWithRun(t *testing.T) {
	assert.Empty(t, RunID(context.Background()))
}

func TestFromContextFallsBackToGlobalLogger(t *testing.T) {
	InitLogger()
	assert.NotNil(t, FromContext(context.Background()))
}

func TestPhaseReturnsCompletionFunc(t *testing.T) {
	InitLogger()
	ctx, _ := WithRun(context.Background())

	done := Phase(ctx, "test-phase")
	require.NotNil(t, done)
	done()
}
