package blocking

import "errors"

var (
	// ErrEmpty is returned by First, Last and Single when the source completes
	// without values, and by a Future resolved from an empty source.
	ErrEmpty = errors.New("blocking: sequence contains no elements")

	// ErrMoreThanOne is returned by Single when the source emits a second value.
	ErrMoreThanOne = errors.New("blocking: sequence contains more than one element")

	// ErrTimeout is returned by AwaitWithTimeout when the deadline passes first.
	ErrTimeout = errors.New("blocking: timeout waiting for result")

	// ErrCancelled is the outcome of a Future after Cancel.
	ErrCancelled = errors.New("blocking: future cancelled")
)
