package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNop(t *testing.T) {
	metrics := NewNop()

	require.NotNil(t, metrics)
	require.IsType(t, &NopMetrics{}, metrics)
}

func TestNopMetrics_RecordCommit(t *testing.T) {
	metrics := NewNop()

	// Should not panic with various inputs
	require.NotPanics(t, func() {
		metrics.RecordCommit("commit", 1.5, true)
		metrics.RecordCommit("", 0, false)
		metrics.RecordCommit("plan_week", -1.0, true)
	})
}

func TestNopMetrics_RecordLeaseAcquire(t *testing.T) {
	metrics := NewNop()

	// Should not panic with various inputs
	require.NotPanics(t, func() {
		metrics.RecordLeaseAcquire("created")
		metrics.RecordLeaseAcquire("reclaimed")
		metrics.RecordLeaseAcquire("")
	})
}

func TestNopMetrics_RecordHistoryDepth(t *testing.T) {
	metrics := NewNop()

	// Should not panic with various inputs
	require.NotPanics(t, func() {
		metrics.RecordHistoryDepth(50, 3)
		metrics.RecordHistoryDepth(0, 0)
		metrics.RecordHistoryDepth(-1, -1)
	})
}

func TestNopMetrics_RecordStoreOperation(t *testing.T) {
	metrics := NewNop()

	// Should not panic with various inputs
	require.NotPanics(t, func() {
		metrics.RecordStoreOperation("load", 0.1, true)
		metrics.RecordStoreOperation("save", 0, false)
		metrics.RecordStoreOperation("", -1, true)
	})
}

func BenchmarkNopMetrics_RecordCommit(b *testing.B) {
	metrics := NewNop()
	for b.Loop() {
		metrics.RecordCommit("commit", 1.5, true)
	}
}

func BenchmarkNopMetrics_RecordPlacementRun(b *testing.B) {
	metrics := NewNop()
	for b.Loop() {
		metrics.RecordPlacementRun(24, 2)
	}
}

func BenchmarkNopMetrics_RecordLeaseRefresh(b *testing.B) {
	metrics := NewNop()
	for b.Loop() {
		metrics.RecordLeaseRefresh(true)
	}
}
