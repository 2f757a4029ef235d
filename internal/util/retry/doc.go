// Package retry provides exponential backoff for transient remote failures.
//
// [Do] repeats an operation until it succeeds, the attempt budget is spent,
// the context ends, or the operation returns an error marked with [Fatal].
// The REST transport uses it for 429 and 5xx responses; the reconciliation
// core never retries on its own.
package retry
