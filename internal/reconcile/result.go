package reconcile

import "github.com/IBM/vmware-l4-automation/internal/tasks"

// Outcome is the final state of one action.
type Outcome string

// Action outcomes.
const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// Entry pairs an action with its outcome.
type Entry struct {
	Action  Action
	Outcome Outcome
	Err     error
	Tasks   []tasks.Report
}

// Result summarizes one reconciliation run. Identifiers are those
// observed at the end of the run and are empty when unknown.
type Result struct {
	// Entries holds the executed actions in plan order followed by the
	// skipped ones.
	Entries []Entry

	CatalogID   string
	CatalogHref string
	WorkspaceID string
	IPSpaceID   string
	PublicIP    string

	// Variables is set only when the workspace was created in this run.
	// It includes secure values.
	Variables []Variable
}

// Failed returns the failed entries.
func (r *Result) Failed() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Outcome == OutcomeFailed {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of entries with the given outcome.
func (r *Result) Count(o Outcome) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == o {
			n++
		}
	}
	return n
}
