package reconcile

import (
	"errors"
	"fmt"

	"github.com/IBM/vmware-l4-automation/internal/tasks"
)

// Sentinel errors matched with errors.Is.
var (
	ErrInvalidDesiredState = errors.New("invalid desired state")
	ErrAmbiguousResource   = errors.New("ambiguous resource")
	ErrNoIPSpaceForAddress = errors.New("no IP space contains address")
	ErrTaskTimeout         = errors.New("task timed out")
	ErrTaskFailed          = errors.New("task failed")
	ErrCatalogUnavailable  = errors.New("catalog unavailable")
)

// RemoteQueryError is a failed read while probing. It aborts the run.
type RemoteQueryError struct {
	Op  string
	Err error
}

func (e *RemoteQueryError) Error() string {
	return fmt.Sprintf("remote query %s: %v", e.Op, e.Err)
}

func (e *RemoteQueryError) Unwrap() error {
	return e.Err
}

// RemoteActionError is a failed request for one planned action.
type RemoteActionError struct {
	Action Action
	Err    error
}

func (e *RemoteActionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *RemoteActionError) Unwrap() error {
	return e.Err
}

// AmbiguousResourceError reports more than one remote resource with a name
// that must be unique.
type AmbiguousResourceError struct {
	Kind  string
	Name  string
	Count int
}

func (e *AmbiguousResourceError) Error() string {
	return fmt.Sprintf("%d %ss named %q found, expected at most one", e.Count, e.Kind, e.Name)
}

// Is matches ErrAmbiguousResource.
func (e *AmbiguousResourceError) Is(target error) bool {
	return target == ErrAmbiguousResource
}

// NoIPSpaceError reports an address outside every visible IP space.
type NoIPSpaceError struct {
	Address string
}

func (e *NoIPSpaceError) Error() string {
	return fmt.Sprintf("public IP %s is not inside any IP space", e.Address)
}

// Is matches ErrNoIPSpaceForAddress.
func (e *NoIPSpaceError) Is(target error) bool {
	return target == ErrNoIPSpaceForAddress
}

// TaskTimeoutError reports a task still running at the deadline.
type TaskTimeoutError struct {
	Ref        string
	LastStatus tasks.Status
}

func (e *TaskTimeoutError) Error() string {
	return fmt.Sprintf("task %s still %s at deadline", e.Ref, e.LastStatus)
}

// Is matches ErrTaskTimeout.
func (e *TaskTimeoutError) Is(target error) bool {
	return target == ErrTaskTimeout
}

// TaskFailedError reports a task that ended in error or aborted.
type TaskFailedError struct {
	Ref    string
	Status tasks.Status
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("task %s ended with status %s", e.Ref, e.Status)
}

// Is matches ErrTaskFailed.
func (e *TaskFailedError) Is(target error) bool {
	return target == ErrTaskFailed
}

// IsAbort reports whether err belongs to the class that stops a run before
// any action is taken.
func IsAbort(err error) bool {
	var rq *RemoteQueryError
	return errors.As(err, &rq) ||
		errors.Is(err, ErrAmbiguousResource) ||
		errors.Is(err, ErrNoIPSpaceForAddress) ||
		errors.Is(err, ErrInvalidDesiredState)
}
