// Package thread error types, compatible with errors.Is and errors.As.
package thread

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSupported indicates an operation that does not apply to the
	// Thread's lock kind, e.g. calling [Thread.Lock] on a [LockSemaphore]
	// thread. It is always wrapped in an [*OpError].
	ErrNotSupported = errors.New(`operation not supported by lock kind`)

	// ErrInvalid indicates a nil or closed Thread. It is always wrapped in
	// an [*OpError].
	ErrInvalid = errors.New(`invalid or closed thread`)
)

// OpError records a failed Thread operation, the lock kind it was dispatched
// to, and the underlying cause.
type OpError struct {
	// Err is the underlying cause, e.g. [ErrNotSupported] or [ErrInvalid].
	Err error
	// Op is the operation name, e.g. "lock", "wait".
	Op string
	// Kind is the Thread's lock kind. Only meaningful if Err is not
	// [ErrInvalid].
	Kind LockKind
}

// Error implements the error interface.
func (x *OpError) Error() string {
	if errors.Is(x.Err, ErrInvalid) {
		return fmt.Sprintf(`thread: %s: %v`, x.Op, x.Err)
	}
	return fmt.Sprintf(`thread: %s (%s): %v`, x.Op, x.Kind, x.Err)
}

// Unwrap returns the underlying cause, for use with [errors.Is] and
// [errors.As].
func (x *OpError) Unwrap() error {
	return x.Err
}
