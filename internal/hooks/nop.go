package hooks

import (
	"context"

	"github.com/humphreyyy/sitzplatz/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, string, *types.StateSnapshot) error = (*NopHooks)(nil).OnSnapshotCommitted
	_ func(context.Context, types.LeaseInfo) error              = (*NopHooks)(nil).OnLeaseReclaimed
	_ func(context.Context, string) error                       = (*NopHooks)(nil).OnHistoryRestored
	_ func(context.Context, error) error                        = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnSnapshotCommitted: h.OnSnapshotCommitted,
		OnLeaseReclaimed:    h.OnLeaseReclaimed,
		OnHistoryRestored:   h.OnHistoryRestored,
		OnError:             h.OnError,
	}
}

// OnSnapshotCommitted is a no-op implementation.
func (h *NopHooks) OnSnapshotCommitted(_ context.Context, _ string, _ *types.StateSnapshot) error {
	return nil
}

// OnLeaseReclaimed is a no-op implementation.
func (h *NopHooks) OnLeaseReclaimed(_ context.Context, _ types.LeaseInfo) error {
	return nil
}

// OnHistoryRestored is a no-op implementation.
func (h *NopHooks) OnHistoryRestored(_ context.Context, _ string) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
