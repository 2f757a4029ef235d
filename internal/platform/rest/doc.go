// Package rest is the HTTP transport shared by the IBM Cloud and VMware
// Cloud Director clients.
//
// Requests are retried on transport errors, 429 and 5xx responses using
// the backoff policy from internal/util/retry. Any other non-2xx response
// fails immediately with an [*HTTPError].
package rest
