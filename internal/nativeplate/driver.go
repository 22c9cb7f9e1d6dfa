// Package nativeplate drives an external native plate-tectonics solver across
// an FFI boundary and marshals its output into owned Go buffers. The solver
// itself is not re-entrant: only one Handle may be live process-wide, which
// this package enforces with a package-level mutex rather than a per-instance
// one, since the shared resource is the native library's global state, not
// any single Driver value.
package nativeplate

import (
	"errors"
	"sync"

	"planetgen/internal/grid"
)

// Sentinel errors mapped onto the pipeline's typed ErrorKind taxonomy by the
// orchestrator. Kept as plain errors here (rather than the root package's
// GenerationError) so this package has no dependency on the pipeline.
var (
	ErrLibraryMissing = errors.New("nativeplate: shared library not found")
	ErrCreateFailed   = errors.New("nativeplate: solver rejected create")
	ErrDidNotConverge = errors.New("nativeplate: solver did not converge within step cap")
)

// MaxSteps bounds run_to_completion; exceeding it without the solver
// reporting finished is ErrDidNotConverge.
const MaxSteps = 10_000

// Kinematics describes one plate's rigid-body motion, as produced by the
// solver's batched kinematics call. The solver is known to sometimes return
// zero entries even after a successful run; callers must treat an empty
// slice as valid, not as an error.
type Kinematics struct {
	PlateID           uint32
	VelocityUnitX     float64
	VelocityUnitY     float64
	VelocityMagnitude float64
	MassCenterX       float64
	MassCenterY       float64
}

// CreateParams mirrors the native create() signature (§6.2).
type CreateParams struct {
	Seed           int64
	Width, Height  int
	SeaLevel       float64
	ErosionPeriod  int
	FoldingRatio   float64
	AggrOverlapAbs int
	AggrOverlapRel float64
	CycleCount     int
	NumPlates      int
}

// Extraction is the owned result of Driver.Extract: a copy of the solver's
// arrays, safe to use after the handle is destroyed.
type Extraction struct {
	Heightmap  *grid.Heightmap
	Plates     *grid.PlateMap
	Kinematics []Kinematics
}

// Driver is the seam between the pipeline and a plate-tectonics solver,
// injectable so tests can run the full pipeline without the real native
// library installed.
type Driver interface {
	// Create acquires a scoped handle. The returned Handle must be released
	// via Close exactly once, on every exit path.
	Create(params CreateParams) (Handle, error)
}

// Handle is a scoped native resource: RunToCompletion and Extract operate on
// it, and Close guarantees the underlying native handle is destroyed even if
// the caller never calls Extract.
type Handle interface {
	RunToCompletion() error
	Extract() (Extraction, error)
	Close() error
}

// processMu serializes all access to the native library, process-wide, since
// the library keeps global state rather than per-handle state.
var processMu sync.Mutex

// lock/unlock wrap the mutex for the purego-backed LibDriver, which holds it
// from Create until Close. FakeDriver does not take the lock, since it
// touches no native state.
func lock()   { processMu.Lock() }
func unlock() { processMu.Unlock() }
