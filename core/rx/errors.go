package rx

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrEmpty is emitted by First and Last when the source completes without values.
	ErrEmpty = errors.New("rx: sequence contains no elements")
)

// PanicError carries a panic recovered at a framework boundary, converted into
// an error signal.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("rx: recovered panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// call runs fn, converting a panic into a *PanicError.
func call[R any](fn func() (R, error)) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p)
		}
	}()
	return fn()
}

// joinErrors returns the single error as is, or all of them joined.
func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
