package reconcile

import "fmt"

// Plan is the ordered set of actions needed to reach Desired from Current.
type Plan struct {
	Desired DesiredState
	Current Snapshot

	// Actions must be executed in order.
	Actions []Action

	// Satisfied holds the actions that were not needed because the
	// snapshot already matches.
	Satisfied []Action
}

// Empty reports whether nothing needs to change.
func (p *Plan) Empty() bool {
	return len(p.Actions) == 0
}

// Planner computes plans. It performs no I/O.
type Planner struct{}

// Plan diffs desired against current. Catalog, items, workspace and IP are
// evaluated independently, in that order. An error is returned only for an
// invalid desired state.
func (Planner) Plan(desired DesiredState, current *Snapshot) (*Plan, error) {
	if err := desired.Validate(); err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrInvalidDesiredState)
	}

	plan := &Plan{Desired: desired, Current: *current}
	add := func(needed bool, a Action) {
		if needed {
			plan.Actions = append(plan.Actions, a)
		} else {
			plan.Satisfied = append(plan.Satisfied, a)
		}
	}

	add(current.Catalog == nil, CreateCatalog(desired.Catalog))

	missing := make(map[string]struct{}, len(current.MissingItems))
	for _, item := range current.MissingItems {
		missing[item.Name] = struct{}{}
	}
	for _, item := range desired.Items {
		_, needed := missing[item.Name]
		add(needed || current.Catalog == nil, UploadCatalogItem(item))
	}

	add(current.Workspace == nil, CreateWorkspace(desired.Workspace))
	add(!current.IPAllocated, AllocatePublicIP(current.IPSpaceID, desired.PublicIP))

	return plan, nil
}
