package reconcile

import (
	"context"
	"time"

	"github.com/IBM/vmware-l4-automation/internal/observability"
	"github.com/IBM/vmware-l4-automation/internal/tasks"
)

// Reconciler runs probe, plan and apply against one control plane.
type Reconciler struct {
	remote   Remote
	poller   tasks.Poller
	minter   TokenMinter
	observer observability.Observer
	metrics  *Metrics

	taskTimeout  time.Duration
	pollInterval time.Duration
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithObserver sets the observer for reconciliation events.
func WithObserver(o observability.Observer) Option {
	return func(r *Reconciler) {
		r.observer = o
	}
}

// WithMetrics records measurements into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// WithTaskTimeout bounds the wait for remote tasks. Zero means no limit
// beyond the context.
func WithTaskTimeout(d time.Duration) Option {
	return func(r *Reconciler) {
		r.taskTimeout = d
	}
}

// WithPollInterval sets the task polling interval.
func WithPollInterval(d time.Duration) Option {
	return func(r *Reconciler) {
		r.pollInterval = d
	}
}

// NewReconciler creates a Reconciler.
func NewReconciler(remote Remote, poller tasks.Poller, minter TokenMinter, opts ...Option) *Reconciler {
	r := &Reconciler{
		remote:       remote,
		poller:       poller,
		minter:       minter,
		observer:     observability.Nop(),
		taskTimeout:  30 * time.Minute,
		pollInterval: time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan probes the remote state and returns the plan without executing it.
func (r *Reconciler) Plan(ctx context.Context, desired DesiredState) (*Plan, error) {
	if err := desired.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.LogPhaseStart(r.observer, phaseProbe)
	snap, err := NewProber(r.remote, r.observer).Probe(ctx, desired)
	if err != nil {
		observability.LogPhaseFailed(r.observer, phaseProbe, err)
		return nil, err
	}
	observability.LogPhaseComplete(r.observer, phaseProbe, time.Since(start))

	return Planner{}.Plan(desired, snap)
}

// Reconcile converges the remote state on desired. Abort-class errors
// (see IsAbort) are returned before any action is taken; everything else
// is reported in the Result.
func (r *Reconciler) Reconcile(ctx context.Context, desired DesiredState) (*Result, error) {
	start := time.Now()

	plan, err := r.Plan(ctx, desired)
	if err != nil {
		return nil, err
	}
	r.observer.Printf("Plan has %d actions, %d already satisfied", len(plan.Actions), len(plan.Satisfied))

	tracker := tasks.NewTracker(r.poller, r.pollInterval,
		tasks.WithObserver(r.observer),
		tasks.WithMetrics(r.metrics),
	)
	executor := NewExecutor(r.remote, tracker, r.minter, r.observer, r.metrics, r.taskTimeout)

	applyStart := time.Now()
	observability.LogPhaseStart(r.observer, phaseApply)
	result := executor.Apply(ctx, plan)
	if failed := result.Failed(); len(failed) > 0 {
		observability.LogPhaseFailed(r.observer, phaseApply, failed[0].Err)
	} else {
		observability.LogPhaseComplete(r.observer, phaseApply, time.Since(applyStart))
	}

	r.metrics.ReconcileCompleted(time.Since(start))
	return result, nil
}
