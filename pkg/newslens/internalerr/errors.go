package internalerr

import "errors"

// Sentinel errors for common cases
var (
	// ErrInvalidInput covers malformed or missing required data:
	// empty corpora, documents without required fields, nil token streams.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateInput covers configuration that is incompatible with
	// the data it is applied to, e.g. more topics than vocabulary terms
	// or a count matrix with no non-zero entries.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrNumericInstability is returned when a computation produces a
	// non-finite value where a finite one is an invariant, e.g. a
	// probability distribution that fails to normalize within tolerance.
	ErrNumericInstability = errors.New("numeric instability")

	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid configuration")
)
