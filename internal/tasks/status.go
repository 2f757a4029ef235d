package tasks

import (
	"fmt"
	"time"
)

// Status is the state of a remote task as reported by the control plane.
// Values outside the known set are kept verbatim.
type Status string

// Known task states.
const (
	Queued     Status = "queued"
	PreRunning Status = "preRunning"
	Running    Status = "running"
	Success    Status = "success"
	Error      Status = "error"
	Aborted    Status = "aborted"
)

// Terminal reports whether polling should stop. Unknown values are not
// terminal.
func (s Status) Terminal() bool {
	switch s {
	case Success, Error, Aborted:
		return true
	default:
		return false
	}
}

// Known reports whether s is one of the defined states.
func (s Status) Known() bool {
	switch s {
	case Queued, PreRunning, Running, Success, Error, Aborted:
		return true
	default:
		return false
	}
}

// Handle correlates a remote task with the plan action that started it.
type Handle struct {
	Ref    string
	Origin int
}

func (h Handle) String() string {
	return fmt.Sprintf("%d/%s", h.Origin, h.Ref)
}

// Report is the tracking outcome of one handle.
type Report struct {
	Handle   Handle
	Status   Status
	Polls    int
	TimedOut bool
	Err      error
	Elapsed  time.Duration
}

// Succeeded reports whether the task finished with Success.
func (r Report) Succeeded() bool {
	return r.Err == nil && !r.TimedOut && r.Status == Success
}
