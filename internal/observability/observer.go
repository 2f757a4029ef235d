package observability

import (
	"fmt"
	"maps"
	"time"
)

// Logger is the minimal printf-style logger.
type Logger interface {
	Printf(format string, v ...any)
}

// Observer defines the interface for structured observability during a run.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)

	// Progress reports progress for a phase.
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured reconciliation event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Resource  string
	Err       error
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of event.
type EventType string

const (
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventPhaseFailed    EventType = "phase.failed"

	EventResourceExists   EventType = "resource.exists"
	EventResourceMissing  EventType = "resource.missing"
	EventResourceCreating EventType = "resource.creating"
	EventResourceCreated  EventType = "resource.created"
	EventResourceFailed   EventType = "resource.failed"

	EventTaskPolled        EventType = "task.polled"
	EventTaskFinished      EventType = "task.finished"
	EventTaskTimedOut      EventType = "task.timeout"
	EventTaskUnknownStatus EventType = "task.unknown_status"

	EventValidationWarning EventType = "validation.warning"
)

// Severity groups event types by how loudly they should be reported.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// Severity returns the reporting level for the event type.
func (t EventType) Severity() Severity {
	switch t {
	case EventTaskPolled:
		return SeverityDebug
	case EventTaskUnknownStatus, EventTaskTimedOut, EventValidationWarning:
		return SeverityWarn
	case EventPhaseFailed, EventResourceFailed:
		return SeverityError
	default:
		return SeverityInfo
	}
}

type nopObserver struct{}

func (nopObserver) Printf(string, ...any)                   {}
func (nopObserver) Event(Event)                             {}
func (nopObserver) Progress(string, int, int)               {}
func (n nopObserver) WithFields(map[string]string) Observer { return n }

// Nop returns an Observer that discards everything.
func Nop() Observer {
	return nopObserver{}
}

func mergeFields(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}

// LogPhaseStart logs a phase start event.
func LogPhaseStart(o Observer, phase string) {
	o.Event(Event{Type: EventPhaseStarted, Phase: phase, Message: "starting"})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(o Observer, phase string, d time.Duration) {
	o.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", d.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(o Observer, phase string, err error) {
	o.Event(Event{Type: EventPhaseFailed, Phase: phase, Message: "failed", Err: err})
}

// LogResourceExists logs when a resource already satisfies desired state.
func LogResourceExists(o Observer, phase, resourceType, name, id string) {
	o.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: name,
		Message:  resourceType + " already exists",
		Fields:   map[string]string{"type": resourceType, "id": id},
	})
}

// LogResourceMissing logs when a resource is absent and will be created.
func LogResourceMissing(o Observer, phase, resourceType, name string) {
	o.Event(Event{
		Type:     EventResourceMissing,
		Phase:    phase,
		Resource: name,
		Message:  resourceType + " not found",
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceCreating logs a resource creation start event.
func LogResourceCreating(o Observer, phase, resourceType, name string) {
	o.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: name,
		Message:  "creating " + resourceType,
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceCreated logs a successful resource creation event.
func LogResourceCreated(o Observer, phase, resourceType, name string) {
	o.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: name,
		Message:  resourceType + " created",
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceFailed logs a failed resource operation.
func LogResourceFailed(o Observer, phase, resourceType, name string, err error) {
	o.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Resource: name,
		Message:  resourceType + " failed",
		Err:      err,
		Fields:   map[string]string{"type": resourceType},
	})
}
