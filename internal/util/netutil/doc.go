// Package netutil provides address helpers used when matching a public IP
// against the internal scopes of Cloud Director IP spaces.
package netutil
