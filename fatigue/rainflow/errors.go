package rainflow

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a bad parameter or a call in the wrong state.
	ErrInvalidArgument = errors.New("rainflow: invalid argument")
	// ErrOutOfMemory reports that the allocator could not grow a buffer.
	ErrOutOfMemory = errors.New("rainflow: out of memory")
	// ErrCounterOverflow reports that a counter would exceed its limit.
	ErrCounterOverflow = errors.New("rainflow: counter overflow")
	// ErrInternal reports a broken internal invariant, usually caused by a
	// misbehaving injected component.
	ErrInternal = errors.New("rainflow: internal error")
	// ErrFailed is returned by every call on a counter in StateError,
	// joined with the error that caused the failure.
	ErrFailed = errors.New("rainflow: counter failed")
)

func outOfMemory(err error) error {
	return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
}
