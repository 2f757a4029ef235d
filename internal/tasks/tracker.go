package tasks

import (
	"context"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/IBM/vmware-l4-automation/internal/observability"
	"github.com/IBM/vmware-l4-automation/internal/util/async"
)

const phase = "tasks"

// Poller reads the current status of a remote task.
type Poller interface {
	PollTask(ctx context.Context, ref string) (Status, error)
}

// PollerFunc adapts a function to Poller.
type PollerFunc func(ctx context.Context, ref string) (Status, error)

// PollTask implements Poller.
func (f PollerFunc) PollTask(ctx context.Context, ref string) (Status, error) {
	return f(ctx, ref)
}

// Metrics receives tracker measurements.
type Metrics interface {
	TaskPolled(status Status)
	TaskFinished(status Status, wait time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) TaskPolled(Status)                  {}
func (nopMetrics) TaskFinished(Status, time.Duration) {}

// Tracker polls task handles until they finish.
type Tracker struct {
	poller   Poller
	interval time.Duration
	observer observability.Observer
	metrics  Metrics
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithObserver sets the observer for tracking events.
func WithObserver(o observability.Observer) Option {
	return func(t *Tracker) {
		t.observer = o
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

// NewTracker creates a Tracker polling every interval.
func NewTracker(poller Poller, interval time.Duration, opts ...Option) *Tracker {
	if interval <= 0 {
		interval = time.Second
	}
	t := &Tracker{
		poller:   poller,
		interval: interval,
		observer: observability.Nop(),
		metrics:  nopMetrics{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AwaitAll polls every handle concurrently until all are terminal or the
// deadline passes, whichever comes first. A zero deadline waits without
// limit. Handles still running at the deadline are reported with their last
// observed status and TimedOut set. A failed poll stops tracking that handle
// and is reported in Err.
func (t *Tracker) AwaitAll(ctx context.Context, handles []Handle, deadline time.Time) map[Handle]Report {
	out := make(map[Handle]Report, len(handles))
	if len(handles) == 0 {
		return out
	}

	parent := ctx
	var cancel context.CancelFunc
	if deadline.IsZero() {
		ctx, cancel = context.WithCancel(ctx)
	} else {
		ctx, cancel = context.WithDeadline(ctx, deadline)
	}
	defer cancel()

	results := cmap.New[Report]()
	start := time.Now()

	var work []async.Task
	for _, h := range handles {
		if !results.SetIfAbsent(h.String(), Report{Handle: h, Status: Queued}) {
			continue
		}
		work = append(work, async.Task{
			Name: h.String(),
			Func: func(ctx context.Context) error {
				return t.track(ctx, h, results, start)
			},
		})
	}

	group := async.Start(ctx, work)
	select {
	case <-group.Done():
	case <-ctx.Done():
	}

	for _, r := range results.Items() {
		if !r.Status.Terminal() && r.Err == nil {
			if parent.Err() != nil {
				r.Err = parent.Err()
			} else {
				r.TimedOut = true
				t.observer.Event(observability.Event{
					Type:     observability.EventTaskTimedOut,
					Phase:    phase,
					Resource: r.Handle.Ref,
					Message:  "task still " + string(r.Status) + " at deadline",
				})
			}
			r.Elapsed = time.Since(start)
		}
		out[r.Handle] = r
	}
	return out
}

func (t *Tracker) track(ctx context.Context, h Handle, results cmap.ConcurrentMap[string, Report], start time.Time) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	update := func(fn func(r *Report)) Report {
		return results.Upsert(h.String(), Report{}, func(_ bool, cur Report, _ Report) Report {
			fn(&cur)
			return cur
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			return nil
		}

		status, err := t.poller.PollTask(ctx, h.Ref)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			update(func(r *Report) {
				r.Polls++
				r.Err = err
				r.Elapsed = time.Since(start)
			})
			t.observer.Event(observability.Event{
				Type:     observability.EventResourceFailed,
				Phase:    phase,
				Resource: h.Ref,
				Message:  "task poll failed",
				Err:      err,
			})
			return err
		}

		t.metrics.TaskPolled(status)
		r := update(func(r *Report) {
			r.Polls++
			r.Status = status
			if status.Terminal() {
				r.Elapsed = time.Since(start)
			}
		})

		if !status.Known() {
			t.observer.Event(observability.Event{
				Type:     observability.EventTaskUnknownStatus,
				Phase:    phase,
				Resource: h.Ref,
				Message:  "unrecognized task status " + string(status) + ", continuing to poll",
			})
			continue
		}

		t.observer.Event(observability.Event{
			Type:     observability.EventTaskPolled,
			Phase:    phase,
			Resource: h.Ref,
			Message:  string(status),
		})

		if status.Terminal() {
			t.metrics.TaskFinished(status, r.Elapsed)
			t.observer.Event(observability.Event{
				Type:     observability.EventTaskFinished,
				Phase:    phase,
				Resource: h.Ref,
				Message:  "task " + string(status),
			})
			return nil
		}
	}
}
