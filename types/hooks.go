package types

import "context"

// Hooks defines callbacks for session lifecycle events.
//
// All hooks are optional and called asynchronously in background
// goroutines to avoid blocking mutations. Hooks receive the session's
// lifecycle context, which is cancelled when the session closes.
//
// IMPORTANT: Hook execution behavior:
//   - Hooks run concurrently and may not complete before Close() returns
//   - Hook errors are logged but never fail the triggering operation
//
// Best practices for hook implementation:
//   - Complete quickly (< 1 second recommended)
//   - Respect context cancellation
//   - Make hooks idempotent (may be called multiple times)
type Hooks struct {
	// OnSnapshotCommitted is called after a mutation is validated and
	// persisted. The snapshot is a private copy the hook may inspect
	// freely.
	OnSnapshotCommitted func(ctx context.Context, operation string, snap *StateSnapshot) error

	// OnLeaseReclaimed is called when opening the session took over a
	// stale or corrupt lease from a previous holder.
	OnLeaseReclaimed func(ctx context.Context, previous LeaseInfo) error

	// OnHistoryRestored is called after an undo or redo was persisted.
	OnHistoryRestored func(ctx context.Context, operation string) error

	// OnError is called when a recoverable background error occurs,
	// e.g. a failed lease refresh.
	OnError func(ctx context.Context, err error) error
}
