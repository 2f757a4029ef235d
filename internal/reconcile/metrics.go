package reconcile

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/IBM/vmware-l4-automation/internal/tasks"
)

const metricsNamespace = "labctl"

// Metrics records reconciliation and task tracking measurements on a
// caller-supplied registry. A nil *Metrics records nothing.
type Metrics struct {
	actionsTotal      *prometheus.CounterVec
	reconcileDuration prometheus.Histogram
	taskPollsTotal    *prometheus.CounterVec
	taskWait          *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "reconcile",
				Name:      "actions_total",
				Help:      "Total number of reconciliation actions by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		reconcileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "reconcile",
				Name:      "duration_seconds",
				Help:      "Duration of reconciliation runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~34min
			},
		),
		taskPollsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "task",
				Name:      "polls_total",
				Help:      "Total number of task status polls by observed status",
			},
			[]string{"status"},
		),
		taskWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "task",
				Name:      "wait_seconds",
				Help:      "Time from tracking start until a task reached a terminal status",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(m.actionsTotal, m.reconcileDuration, m.taskPollsTotal, m.taskWait)
	return m
}

// ActionCompleted records the outcome of one action.
func (m *Metrics) ActionCompleted(kind ActionKind, outcome Outcome) {
	if m == nil {
		return
	}
	m.actionsTotal.WithLabelValues(string(kind), string(outcome)).Inc()
}

// ReconcileCompleted records the duration of a run.
func (m *Metrics) ReconcileCompleted(d time.Duration) {
	if m == nil {
		return
	}
	m.reconcileDuration.Observe(d.Seconds())
}

// TaskPolled implements tasks.Metrics.
func (m *Metrics) TaskPolled(status tasks.Status) {
	if m == nil {
		return
	}
	m.taskPollsTotal.WithLabelValues(string(status)).Inc()
}

// TaskFinished implements tasks.Metrics.
func (m *Metrics) TaskFinished(status tasks.Status, wait time.Duration) {
	if m == nil {
		return
	}
	m.taskWait.WithLabelValues(string(status)).Observe(wait.Seconds())
}
