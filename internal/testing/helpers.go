package testing

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds every TestContext.
const DefaultTimeout = 30 * time.Second

// TestContext returns a context that is cancelled when the test ends or
// after DefaultTimeout.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	t.Cleanup(cancel)
	return ctx
}
