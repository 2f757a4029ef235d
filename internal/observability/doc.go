// Package observability carries structured events from the reconciliation
// engine to the operator.
//
// Components depend on the [Observer] interface. [ZerologObserver] writes
// events through zerolog; [Recorder] keeps them in memory for tests and for
// rendering summaries.
package observability
