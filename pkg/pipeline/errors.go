package pipeline

import (
	"errors"
	"fmt"
)

// ErrProcessingError
type ErrProcessingError struct {
	error

	Category string

	// Record is the payload being processed when the error occurred, set by the Runner
	Record *Input

	AdditionalInputs []Input
}

type Input struct {
	Source string
	Key    string
	Value  []byte
}

const (
	UnknownCategory = "unknown"
	PanicCategory   = "panic"
)

func NewErrProcessingError(err error, category string, additionalInputs []Input) ErrProcessingError {
	return ErrProcessingError{
		error:            err,
		Category:         category,
		AdditionalInputs: additionalInputs,
	}
}

func (e ErrProcessingError) Unwrap() error {
	return e.error
}

// ErrRetryableError
var ErrRetryableError = errors.New("retryable error")

// ErrPanic wraps the value recovered from a panicking processing
var ErrPanic = errors.New("panic while processing")

// IsRetryable reports whether err carries the ErrRetryableError marker.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRetryableError)
}

func NewErrRetryableError(err error) error {
	return fmt.Errorf("%w: %w", ErrRetryableError, err)
}

func NewRetryableErrProcessingError(err error, category string, additionalInputs []Input) ErrProcessingError {
	return NewErrProcessingError(NewErrRetryableError(err), category, additionalInputs)
}

// ErrBatchAborted is returned by the Runner in fail-fast mode
var ErrBatchAborted = errors.New("batch aborted")
