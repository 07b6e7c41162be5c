package graphics

import (
	"errors"
	"fmt"
)

// Errors a backend may report while presenting.
var (
	// ErrSurfaceOutdated is returned when the surface no longer matches the
	// window and must be reconfigured.
	ErrSurfaceOutdated = errors.New("graphics: surface outdated")

	// ErrSurfaceLost is returned when the surface must be recreated.
	ErrSurfaceLost = errors.New("graphics: surface lost")

	// ErrSurfaceTimeout is returned when acquiring a frame timed out.
	ErrSurfaceTimeout = errors.New("graphics: surface timeout")

	// ErrOutOfMemory is returned when the backend cannot allocate a frame.
	ErrOutOfMemory = errors.New("graphics: out of memory")

	// ErrIncompatibleWindow is returned when a window offers no way for the
	// backend to present.
	ErrIncompatibleWindow = errors.New("graphics: window cannot receive frames from this backend")

	// ErrAdapterNotFound is matched by every AdapterNotFoundError.
	ErrAdapterNotFound = errors.New("graphics: adapter not found")
)

// Reason explains why a backend refused to start.
type Reason uint8

// Reasons.
const (
	// DidNotMatch means the requested backend name belongs to another backend.
	DidNotMatch Reason = iota
	// RequestFailed means the backend matched but could not acquire a device.
	RequestFailed
)

// String returns a short description.
func (r Reason) String() string {
	switch r {
	case DidNotMatch:
		return "did not match"
	case RequestFailed:
		return "request failed"
	default:
		return "unknown"
	}
}

// AdapterNotFoundError reports that a backend could not be created.
type AdapterNotFoundError struct {
	Backend   string
	Requested string
	Reason    Reason
	Err       error
}

// Error implements error.
func (e *AdapterNotFoundError) Error() string {
	requested := e.Requested
	if requested == "" {
		requested = "any"
	}
	msg := fmt.Sprintf("graphics: %s backend unavailable (requested %q): %s", e.Backend, requested, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *AdapterNotFoundError) Unwrap() error { return e.Err }

// Is matches ErrAdapterNotFound.
func (e *AdapterNotFoundError) Is(target error) bool {
	return target == ErrAdapterNotFound
}

// NotMatched returns the error a backend reports for a name it does not own.
func NotMatched(backend, requested string) error {
	return &AdapterNotFoundError{Backend: backend, Requested: requested, Reason: DidNotMatch}
}

// RequestFailedError wraps a device acquisition failure.
func RequestFailedError(backend, requested string, err error) error {
	return &AdapterNotFoundError{Backend: backend, Requested: requested, Reason: RequestFailed, Err: err}
}
