package info_flow

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks an operation record the engine refuses to process.
	// Nothing is propagated for such a record.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnknownOperation = fmt.Errorf("%w: unknown operation", ErrInvalidInput)
	ErrArgumentShape    = fmt.Errorf("%w: argument shape mismatch", ErrInvalidInput)
)
