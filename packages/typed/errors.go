package typed

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrWrongOutType is returned if an Output can not be interpreted as an Output of a typed Validator.
	ErrWrongOutType = errors.New("wrong output type")

	// ErrWrongValidatorAddress is returned if an Output is not locked at the address of the expected Validator.
	ErrWrongValidatorAddress = errors.New("output is not locked by the validator")

	// ErrWrongDatumHash is returned if the datum does not hash to the datum hash of an Output.
	ErrWrongDatumHash = errors.New("datum does not match the datum hash of the output")
)

// WrongOutTypeError is the error returned by TypedOutput. It matches ErrWrongOutType and unwraps to the reason.
type WrongOutTypeError struct {
	reason error
}

func newWrongOutTypeError(reason error) *WrongOutTypeError {
	return &WrongOutTypeError{
		reason: reason,
	}
}

// Error returns a human readable version of the error.
func (w *WrongOutTypeError) Error() string {
	return ErrWrongOutType.Error() + ": " + w.reason.Error()
}

// Unwrap returns the reason of the error.
func (w *WrongOutTypeError) Unwrap() error {
	return w.reason
}

// Is reports whether the target is ErrWrongOutType.
func (w *WrongOutTypeError) Is(target error) bool {
	return target == ErrWrongOutType
}
