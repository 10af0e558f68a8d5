package testutil

import (
	"context"
	"testing"
)

// StartServer creates a Server, starts it and stops it when the test ends.
//
//	srv := testutil.StartServer(t, "ops")
//	srv.Handle(http.MethodGet, "/ops/1", testutil.JSON(200, `{"status":"Running"}`))
func StartServer(tb testing.TB, name string) *Server {
	tb.Helper()
	srv := NewServer(name)
	T(tb).Setup(srv)
	return srv
}

// THelper ties TestComponent lifecycles to a test.
type THelper struct {
	tb  testing.TB
	ctx context.Context
}

// T wraps tb; failures in any helper call tb.Fatalf.
func T(tb testing.TB) *THelper {
	return &THelper{tb: tb, ctx: context.Background()}
}

// Setup starts component and stops it when the test ends.
func (h *THelper) Setup(component TestComponent) {
	h.tb.Helper()
	if err := component.Start(h.ctx); err != nil {
		h.tb.Fatalf("failed to start component %s: %v", component.Name(), err)
	}
	h.tb.Cleanup(func() {
		if err := component.Stop(h.ctx); err != nil {
			h.tb.Errorf("failed to stop component %s: %v", component.Name(), err)
		}
	})
}

// Reset clears component state between cases of one test.
func (h *THelper) Reset(component TestComponent) {
	h.tb.Helper()
	if err := component.Reset(h.ctx); err != nil {
		h.tb.Fatalf("failed to reset component %s: %v", component.Name(), err)
	}
}

// Checkpoint snapshots component and returns a func that rolls it back to
// that snapshot. For a Server the snapshot covers the recorded requests.
func (h *THelper) Checkpoint(component TestComponent) (rollback func()) {
	h.tb.Helper()
	snapshot, err := component.Snapshot(h.ctx)
	if err != nil {
		h.tb.Fatalf("failed to snapshot component %s: %v", component.Name(), err)
	}
	return func() {
		h.tb.Helper()
		if err := component.Restore(h.ctx, snapshot); err != nil {
			h.tb.Fatalf("failed to restore component %s: %v", component.Name(), err)
		}
	}
}
