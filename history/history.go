// Package history tracks accepted snapshot states for undo and redo.
//
// The session records every accepted state, including the baseline it
// loaded at open, onto a bounded past stack whose top is always the
// current live state. Undo moves the live state onto the future stack
// and surfaces the previous one; recording a new state discards the
// future stack, since the redo chain no longer describes reachable
// states.
package history

import (
	"slices"

	"github.com/humphreyyy/sitzplatz/internal/logger"
	"github.com/humphreyyy/sitzplatz/internal/metrics"
	"github.com/humphreyyy/sitzplatz/types"
)

// DefaultMaxDepth bounds the past stack when New receives a
// non-positive depth.
const DefaultMaxDepth = 50

// History holds the two restore stacks of one session.
//
// All returned snapshots are deep copies, and Record copies its input,
// so callers can keep mutating their working state without corrupting
// recorded entries.
//
// History is not safe for concurrent use. It belongs to a single
// session, which serializes access with its own mutex.
type History struct {
	past     []*types.StateSnapshot
	future   []*types.StateSnapshot
	maxDepth int

	logger  types.Logger
	metrics types.HistoryMetrics
}

// New creates an empty history bounded to maxDepth past entries.
//
// Parameters:
//   - maxDepth: Maximum number of retained past states; non-positive
//     values fall back to DefaultMaxDepth
//   - log: Logger for eviction and restore events (nil for no logging)
//   - collector: Metrics sink (nil for no metrics)
//
// Returns:
//   - *History: New empty history
//
// Example:
//
//	hist := history.New(50, log, collector)
//	hist.Record(baseline)
func New(maxDepth int, log types.Logger, collector types.HistoryMetrics) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if log == nil {
		log = logger.NewNop()
	}
	if collector == nil {
		collector = metrics.NewNop()
	}

	return &History{
		maxDepth: maxDepth,
		logger:   log,
		metrics:  collector,
	}
}

// Record pushes a deep copy of the snapshot as the new live state.
//
// When the past stack exceeds the depth bound the oldest entry is
// evicted. Any undone states waiting on the future stack are
// discarded.
func (h *History) Record(snap *types.StateSnapshot) {
	h.past = append(h.past, snap.Clone())
	if len(h.past) > h.maxDepth {
		h.past = slices.Delete(h.past, 0, 1)
		h.logger.Debug("evicted oldest history entry", "max_depth", h.maxDepth)
		h.metrics.RecordHistoryEviction()
	}
	if len(h.future) > 0 {
		h.logger.Debug("discarded redo chain", "entries", len(h.future))
		h.future = nil
	}

	h.metrics.RecordHistoryDepth(len(h.past), len(h.future))
}

// Undo steps back to the previous recorded state.
//
// The live state moves onto the future stack for a later Redo.
//
// Returns:
//   - *types.StateSnapshot: Deep copy of the restored state
//   - error: types.ErrNothingToUndo when no earlier state is recorded
func (h *History) Undo() (*types.StateSnapshot, error) {
	// The top entry is the live state itself; undo needs a state
	// underneath it to restore.
	if len(h.past) < 2 {
		return nil, types.ErrNothingToUndo
	}

	live := h.past[len(h.past)-1]
	h.past = slices.Delete(h.past, len(h.past)-1, len(h.past))
	h.future = append(h.future, live)

	h.metrics.RecordHistoryRestore("undo")
	h.metrics.RecordHistoryDepth(len(h.past), len(h.future))

	return h.past[len(h.past)-1].Clone(), nil
}

// Redo reapplies the most recently undone state.
//
// Returns:
//   - *types.StateSnapshot: Deep copy of the restored state
//   - error: types.ErrNothingToRedo when nothing was undone
func (h *History) Redo() (*types.StateSnapshot, error) {
	if len(h.future) == 0 {
		return nil, types.ErrNothingToRedo
	}

	next := h.future[len(h.future)-1]
	h.future = slices.Delete(h.future, len(h.future)-1, len(h.future))
	h.past = append(h.past, next)

	h.metrics.RecordHistoryRestore("redo")
	h.metrics.RecordHistoryDepth(len(h.past), len(h.future))

	return next.Clone(), nil
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool {
	return len(h.past) >= 2
}

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool {
	return len(h.future) > 0
}

// Current returns a deep copy of the live state, or nil when nothing
// has been recorded yet.
func (h *History) Current() *types.StateSnapshot {
	if len(h.past) == 0 {
		return nil
	}

	return h.past[len(h.past)-1].Clone()
}

// Depth returns the number of past entries, including the live state.
func (h *History) Depth() int {
	return len(h.past)
}

// FutureDepth returns the number of undone states available to Redo.
func (h *History) FutureDepth() int {
	return len(h.future)
}

// MaxDepth returns the past stack bound.
func (h *History) MaxDepth() int {
	return h.maxDepth
}

// Clear drops both stacks. The next Record becomes the new baseline.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
	h.metrics.RecordHistoryDepth(0, 0)
}
