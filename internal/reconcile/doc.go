// Package reconcile converges lab resources on a VCFaaS director site to a
// desired state.
//
// A run has three stages:
//
//   - [Prober] reads the current state into a [Snapshot]. Read failures,
//     ambiguous names and an address outside every IP space abort the run.
//   - [Planner] diffs the [DesiredState] against the snapshot and emits the
//     ordered actions still needed. A satisfied resource yields no action.
//   - [Executor] issues the actions one by one, records per-action failures
//     without stopping, and waits for the resulting remote tasks through
//     the tasks package.
//
// [Reconciler] wires the three together.
package reconcile
