package htable

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned for a nil table handle, unsupported key or
	// value types, and malformed options.
	ErrInvalidArgument = errors.New("htable: invalid argument")

	// ErrAllocation is returned when the table's Allocator refuses a bucket
	// array or node reservation. The table stays valid.
	ErrAllocation = errors.New("htable: allocation failed")

	// ErrTornDown is returned by mutating calls on a table after Deinit.
	ErrTornDown = errors.New("htable: table is torn down")
)

// allocError ties an Allocator refusal to ErrAllocation while keeping the
// allocator's own error reachable through errors.Is and errors.As.
type allocError struct {
	what string
	err  error
}

func (e *allocError) Error() string {
	return ErrAllocation.Error() + ": " + e.what + ": " + e.err.Error()
}

func (e *allocError) Is(target error) bool { return target == ErrAllocation }

func (e *allocError) Unwrap() error { return e.err }
