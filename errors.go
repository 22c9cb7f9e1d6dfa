package worldgen

import "fmt"

// ErrorKind classifies the fatal error conditions the pipeline can surface.
// Every ErrorKind is final: there is no retry at the component or orchestrator
// level, only a typed error the caller can branch on.
type ErrorKind string

const (
	// ErrNativeLibraryMissing indicates the plate-tectonics shared library
	// could not be located or loaded on this platform.
	ErrNativeLibraryMissing ErrorKind = "native_library_missing"
	// ErrNativeCreateFailed indicates the native solver rejected create().
	ErrNativeCreateFailed ErrorKind = "native_create_failed"
	// ErrNativeDidNotConverge indicates the solver did not report finished
	// within the safety step cap.
	ErrNativeDidNotConverge ErrorKind = "native_did_not_converge"
	// ErrInvalidParams indicates GenerationParams failed validation.
	ErrInvalidParams ErrorKind = "invalid_params"
	// ErrHydrologyInvariantViolated indicates an internal consistency check
	// in the hydrology core failed; this is a programmer error, not a bad
	// input, and aborts the run rather than corrupting a field silently.
	ErrHydrologyInvariantViolated ErrorKind = "hydrology_invariant_violated"
	// ErrCancelled indicates the caller's context was cancelled.
	ErrCancelled ErrorKind = "cancelled"
)

// GenerationError is the error type surfaced by Generate and every component
// it composes. It wraps an optional underlying cause so callers can both
// switch on Kind and errors.Is/errors.As through Unwrap.
type GenerationError struct {
	Kind    ErrorKind
	Context string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Context, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Context)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, context string, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Context: context, Err: cause}
}
