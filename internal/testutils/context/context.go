package context

import (
	"context"
	"testing"
	"time"
)

// New returns a context for the test.
//
// It is cancelled when the test finishes, or 1 second before the test's deadline.
func New(t *testing.T) context.Context {
	t.Helper()

	if deadline, ok := t.Deadline(); ok {
		ctx, cancel := context.WithDeadline(context.Background(), deadline.Add(-time.Second))
		t.Cleanup(cancel)
		return ctx
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
