package observability

import (
	"fmt"
	"sync"
)

// Recorder is an Observer that keeps every event in memory.
// It is safe for concurrent use.
type Recorder struct {
	mu     *sync.Mutex
	events *[]Event
	lines  *[]string
	fields map[string]string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		mu:     &sync.Mutex{},
		events: &[]Event{},
		lines:  &[]string{},
		fields: map[string]string{},
	}
}

// Printf implements Logger.
func (r *Recorder) Printf(format string, v ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.lines = append(*r.lines, fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (r *Recorder) Event(event Event) {
	event.Fields = mergeFields(r.fields, event.Fields)
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.events = append(*r.events, event)
}

// Progress implements Observer.
func (r *Recorder) Progress(phase string, current, total int) {
	r.Printf("[%s] %d/%d", phase, current, total)
}

// WithFields implements Observer. The derived recorder shares storage.
func (r *Recorder) WithFields(fields map[string]string) Observer {
	return &Recorder{
		mu:     r.mu,
		events: r.events,
		lines:  r.lines,
		fields: mergeFields(r.fields, fields),
	}
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), *r.events...)
}

// EventsOfType returns the recorded events of type t.
func (r *Recorder) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Lines returns the recorded Printf output.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), *r.lines...)
}
