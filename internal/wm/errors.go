package wm

import (
	"errors"
	"fmt"
)

// MaxConsecutiveFlushFailures is how many flushes in a row may fail before
// the connection is considered lost.
const MaxConsecutiveFlushFailures = 5

// ErrWorkspaceIndexOutOfRange marks an action that names a workspace the
// manager does not have. It can only come from bad static configuration.
var ErrWorkspaceIndexOutOfRange = errors.New("workspace index out of range")

// ErrUnhandledNotification is returned for notification types the
// dispatcher does not know.
var ErrUnhandledNotification = errors.New("unhandled notification")

// ErrUnknownAction is returned for action types the executor does not know.
var ErrUnknownAction = errors.New("unknown action")

// ConnectionError means the display-server link is unusable. It is fatal.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("display connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SpawnError means an external program could not be started. The action
// simply did not take effect.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %q: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// WorkspaceIndexError carries the offending index and wraps
// ErrWorkspaceIndexOutOfRange.
type WorkspaceIndexError struct {
	Index int
	Count int
}

func (e *WorkspaceIndexError) Error() string {
	return fmt.Sprintf("%v: %d (have %d)", ErrWorkspaceIndexOutOfRange, e.Index, e.Count)
}

func (e *WorkspaceIndexError) Unwrap() error { return ErrWorkspaceIndexOutOfRange }

// FlushError means a batch of requests did not reach the server. The next
// relevant notification retries implicitly.
type FlushError struct {
	Consecutive int
	Err         error
}

func (e *FlushError) Error() string {
	return fmt.Sprintf("flush requests (failure %d in a row): %v", e.Consecutive, e.Err)
}

func (e *FlushError) Unwrap() error { return e.Err }

// IsFatal reports whether err must stop the event loop.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return true
	}
	return errors.Is(err, ErrWorkspaceIndexOutOfRange)
}
