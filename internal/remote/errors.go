package remote

import (
	"errors"
	"fmt"
)

// ErrUnavailable reports that no remote client can be built: the endpoint
// is not configured or credentials are absent. It demotes the dashboard to
// demo mode and is never surfaced as fatal.
var ErrUnavailable = errors.New("remote client unavailable")

// OperationError wraps a network or service failure on scan or trigger.
// The signal pipeline catches it at its boundary and substitutes synthetic
// data; it must never propagate past the pipeline.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

func opError(op string, err error) error {
	return &OperationError{Op: op, Err: err}
}
