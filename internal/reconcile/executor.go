package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/vmware-l4-automation/internal/observability"
	"github.com/IBM/vmware-l4-automation/internal/tasks"
)

const phaseApply = "apply"

// Executor issues planned actions and waits for their tasks.
type Executor struct {
	remote   Remote
	tracker  *tasks.Tracker
	minter   TokenMinter
	observer observability.Observer
	metrics  *Metrics
	timeout  time.Duration
}

// NewExecutor creates an Executor. timeout bounds the total wait for
// remote tasks; zero waits until the context ends.
func NewExecutor(remote Remote, tracker *tasks.Tracker, minter TokenMinter, observer observability.Observer, metrics *Metrics, timeout time.Duration) *Executor {
	if observer == nil {
		observer = observability.Nop()
	}
	return &Executor{
		remote:   remote,
		tracker:  tracker,
		minter:   minter,
		observer: observer,
		metrics:  metrics,
		timeout:  timeout,
	}
}

// run is the mutable state of one Apply call.
type run struct {
	plan     *Plan
	deadline time.Time
	entries  []Entry
	handles  []tasks.Handle

	catalog *CatalogRecord
	// catalogTasks are the creation tasks not yet awaited.
	catalogTasks []tasks.Handle
	// catalogOrigin is the index of the CreateCatalog action, or -1.
	catalogOrigin int

	workspace *WorkspaceRecord
	variables []Variable
}

// Apply executes plan.Actions in order. A failed action is recorded and the
// remaining actions still run. Apply never returns an error: every failure
// is reported in the Result entries.
func (e *Executor) Apply(ctx context.Context, plan *Plan) *Result {
	r := &run{
		plan:          plan,
		deadline:      e.deadline(ctx),
		entries:       make([]Entry, len(plan.Actions)),
		catalog:       plan.Current.Catalog,
		catalogOrigin: -1,
		workspace:     plan.Current.Workspace,
	}

	for i, a := range plan.Actions {
		r.entries[i] = Entry{Action: a, Outcome: OutcomeSucceeded}
		observability.LogResourceCreating(e.observer, phaseApply, a.ResourceType(), a.Target())

		var err error
		switch a.Kind {
		case KindCreateCatalog:
			err = e.createCatalog(ctx, r, i, a)
		case KindUploadCatalogItem:
			err = e.uploadItem(ctx, r, i, a)
		case KindCreateWorkspace:
			err = e.createWorkspace(ctx, r, a)
		case KindAllocatePublicIP:
			err = e.allocateIP(ctx, a)
		default:
			err = fmt.Errorf("unknown action kind %q", a.Kind)
		}
		if err != nil {
			r.fail(i, err)
			observability.LogResourceFailed(e.observer, phaseApply, a.ResourceType(), a.Target(), err)
		}
	}

	r.handles = append(r.handles, r.catalogTasks...)
	if len(r.handles) > 0 {
		e.observer.Printf("Waiting for %d remote tasks", len(r.handles))
		r.applyReports(e.tracker.AwaitAll(ctx, r.handles, r.deadline), r.handles)
	}

	for _, entry := range r.entries {
		if entry.Outcome == OutcomeSucceeded {
			observability.LogResourceCreated(e.observer, phaseApply, entry.Action.ResourceType(), entry.Action.Target())
		}
		e.metrics.ActionCompleted(entry.Action.Kind, entry.Outcome)
	}
	for _, a := range plan.Satisfied {
		e.metrics.ActionCompleted(a.Kind, OutcomeSkipped)
	}

	return r.result()
}

func (e *Executor) deadline(ctx context.Context) time.Time {
	var d time.Time
	if e.timeout > 0 {
		d = time.Now().Add(e.timeout)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (d.IsZero() || ctxDeadline.Before(d)) {
		d = ctxDeadline
	}
	return d
}

func (e *Executor) createCatalog(ctx context.Context, r *run, i int, a Action) error {
	record, refs, err := e.remote.CreateCatalog(ctx, a.Catalog)
	if err != nil {
		return &RemoteActionError{Action: a, Err: err}
	}
	r.catalog = &record
	r.catalogOrigin = i
	r.catalogTasks = handlesFor(i, refs)
	return nil
}

func (e *Executor) uploadItem(ctx context.Context, r *run, i int, a Action) error {
	if len(r.catalogTasks) > 0 {
		e.observer.Printf("Waiting for catalog %s to be created", r.catalog.Name)
		pending := r.catalogTasks
		r.catalogTasks = nil
		r.applyReports(e.tracker.AwaitAll(ctx, pending, r.deadline), pending)
	}

	if r.catalog == nil {
		return fmt.Errorf("%w: catalog %q does not exist", ErrCatalogUnavailable, r.plan.Desired.Catalog)
	}
	if r.catalogOrigin >= 0 && r.entries[r.catalogOrigin].Outcome == OutcomeFailed {
		return fmt.Errorf("%w: creating catalog %q failed", ErrCatalogUnavailable, r.catalog.Name)
	}

	refs, err := e.remote.UploadCatalogItem(ctx, *r.catalog, a.Item)
	if err != nil {
		return &RemoteActionError{Action: a, Err: err}
	}
	r.handles = append(r.handles, handlesFor(i, refs)...)
	return nil
}

func (e *Executor) createWorkspace(ctx context.Context, r *run, a Action) error {
	spec := a.Workspace
	spec.Variables = append([]Variable(nil), spec.Variables...)

	if spec.TokenVariable != "" {
		if e.minter == nil {
			return &RemoteActionError{Action: a, Err: errors.New("no token minter configured")}
		}
		token, err := e.minter.MintToken(ctx)
		if err != nil {
			return &RemoteActionError{Action: a, Err: fmt.Errorf("mint API token: %w", err)}
		}
		spec.Variables = setSecure(spec.Variables, spec.TokenVariable, token)
	}

	record, err := e.remote.CreateWorkspace(ctx, spec)
	if err != nil {
		return &RemoteActionError{Action: a, Err: err}
	}
	r.workspace = &record
	r.variables = spec.Variables
	return nil
}

func (e *Executor) allocateIP(ctx context.Context, a Action) error {
	if a.IPSpaceID == "" {
		return &RemoteActionError{Action: a, Err: ErrNoIPSpaceForAddress}
	}
	if err := e.remote.AllocateIP(ctx, a.IPSpaceID, a.Address); err != nil {
		return &RemoteActionError{Action: a, Err: err}
	}
	return nil
}

// setSecure sets name to value, adding a secure variable when absent.
func setSecure(vars []Variable, name, value string) []Variable {
	for i := range vars {
		if vars[i].Name == name {
			vars[i].Value = value
			vars[i].Secure = true
			return vars
		}
	}
	return append(vars, Variable{Name: name, Value: value, Secure: true})
}

func handlesFor(origin int, refs []string) []tasks.Handle {
	out := make([]tasks.Handle, 0, len(refs))
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		out = append(out, tasks.Handle{Ref: ref, Origin: origin})
	}
	return out
}

func (r *run) fail(i int, err error) {
	entry := &r.entries[i]
	if entry.Outcome == OutcomeFailed {
		entry.Err = errors.Join(entry.Err, err)
		return
	}
	entry.Outcome = OutcomeFailed
	entry.Err = err
}

// applyReports attaches task reports to their originating entries in
// handle order and fails entries whose tasks did not succeed.
func (r *run) applyReports(reports map[tasks.Handle]tasks.Report, handles []tasks.Handle) {
	for _, h := range handles {
		report, ok := reports[h]
		if !ok {
			continue
		}
		entry := &r.entries[h.Origin]
		if containsHandle(entry.Tasks, h) {
			continue
		}
		entry.Tasks = append(entry.Tasks, report)
		if err := taskError(report); err != nil {
			r.fail(h.Origin, err)
		}
	}
}

func containsHandle(reports []tasks.Report, h tasks.Handle) bool {
	for _, r := range reports {
		if r.Handle == h {
			return true
		}
	}
	return false
}

func taskError(r tasks.Report) error {
	switch {
	case r.TimedOut, errors.Is(r.Err, context.DeadlineExceeded):
		return &TaskTimeoutError{Ref: r.Handle.Ref, LastStatus: r.Status}
	case r.Err != nil:
		return fmt.Errorf("poll task %s: %w", r.Handle.Ref, r.Err)
	case r.Status == tasks.Success:
		return nil
	default:
		return &TaskFailedError{Ref: r.Handle.Ref, Status: r.Status}
	}
}

func (r *run) result() *Result {
	res := &Result{
		Entries:   append([]Entry(nil), r.entries...),
		IPSpaceID: r.plan.Current.IPSpaceID,
	}

	catalogOK := r.catalogOrigin < 0 || r.entries[r.catalogOrigin].Outcome == OutcomeSucceeded
	if r.catalog != nil && catalogOK {
		res.CatalogID = r.catalog.ID
		res.CatalogHref = r.catalog.Href
	}
	if r.workspace != nil {
		res.WorkspaceID = r.workspace.ID
		res.Variables = r.variables
	}

	allocated := r.plan.Current.IPAllocated
	for _, entry := range r.entries {
		if entry.Action.Kind == KindAllocatePublicIP && entry.Outcome == OutcomeSucceeded {
			allocated = true
		}
	}
	if allocated {
		res.PublicIP = r.plan.Desired.PublicIP
	}

	for _, a := range r.plan.Satisfied {
		res.Entries = append(res.Entries, Entry{Action: a, Outcome: OutcomeSkipped})
	}
	return res
}
