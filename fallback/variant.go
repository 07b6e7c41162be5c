package fallback

import (
	"errors"
	"fmt"
)

// Variant names the backend a dispatcher holds.
type Variant uint8

const (
	// Primary is the hardware backend.
	Primary Variant = iota
	// Secondary is the software backend.
	Secondary
)

// String returns "primary" or "secondary".
func (v Variant) String() string {
	switch v {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// ErrUnsupported is matched by every UnsupportedError.
var ErrUnsupported = errors.New("fallback: operation not supported by the active backend")

// UnsupportedError is the panic value raised when an operation is invoked
// on a backend that does not implement it.
type UnsupportedError struct {
	Operation string
	Variant   Variant
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("fallback: %s is not supported by the %s backend", e.Operation, e.Variant)
}

// Unwrap returns ErrUnsupported.
func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// ErrMismatch is matched by every MismatchError.
var ErrMismatch = errors.New("fallback: value belongs to the other backend")

// MismatchError is the panic value raised when a compositor receives a
// renderer or surface created for the other variant.
type MismatchError struct {
	Operation string
	Want, Got Variant
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("fallback: %s: %s compositor got a %s value", e.Operation, e.Want, e.Got)
}

// Unwrap returns ErrMismatch.
func (e *MismatchError) Unwrap() error { return ErrMismatch }

// invalid is the panic value for a Variant outside the closed set.
func invalid(v Variant) string {
	return fmt.Sprintf("fallback: invalid variant %d", uint8(v))
}
