package effects

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode indicates a mode name that ParseMode does not recognize.
	ErrUnknownMode = errors.New("unknown processing mode")

	// ErrProbeMode indicates ForMode was asked for the probe mode, which reads
	// pixels instead of transforming them.
	ErrProbeMode = errors.New("probe mode has no transform")
)

// TransformError reports a failed transform. It wraps one of the frame package
// sentinels (ErrInvalidBufferLayout, ErrUnreadableMemory, ErrAllocationFailure).
type TransformError struct {
	Op  string // effect name
	Err error  // underlying error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %s: %v", e.Op, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

func newTransformError(op string, err error) *TransformError {
	return &TransformError{
		Op:  op,
		Err: err,
	}
}
