package pipeline

import "errors"

var (
	// ErrAlreadyRunning is returned when Start is called on a running pipeline.
	ErrAlreadyRunning = errors.New("pipeline is already running")

	// ErrNotRunning is returned when Stop is called on a pipeline that is not running.
	ErrNotRunning = errors.New("pipeline is not running")

	// ErrClosed is returned when Start is called after Stop. Results() is closed
	// by Stop, so a pipeline cannot be restarted.
	ErrClosed = errors.New("pipeline is closed")

	// ErrInvalidConfig indicates a Config field out of range.
	ErrInvalidConfig = errors.New("invalid pipeline config")
)
