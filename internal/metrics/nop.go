package metrics

import "github.com/humphreyyy/sitzplatz/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	sess, err := sitzplatz.Open(ctx, &cfg, store, "alice", sitzplatz.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// SessionMetrics implementation

// RecordCommit discards the commit metric.
func (n *NopMetrics) RecordCommit(_ /* operation */ string, _ /* duration */ float64, _ /* success */ bool) {
	// No-op
}

// RecordValidation discards the validation outcome metric.
func (n *NopMetrics) RecordValidation(_ /* violations */, _ /* advisories */ int) {
	// No-op
}

// EngineMetrics implementation

// RecordPlacementRun discards the placement outcome metric.
func (n *NopMetrics) RecordPlacementRun(_ /* placed */, _ /* conflicts */ int) {
	// No-op
}

// RecordOccupancyRate discards the occupancy gauge.
func (n *NopMetrics) RecordOccupancyRate(_ /* rate */ float64) {
	// No-op
}

// LeaseMetrics implementation

// RecordLeaseAcquire discards the acquire outcome metric.
func (n *NopMetrics) RecordLeaseAcquire(_ /* outcome */ string) {
	// No-op
}

// RecordLeaseRefresh discards the refresh metric.
func (n *NopMetrics) RecordLeaseRefresh(_ /* success */ bool) {
	// No-op
}

// RecordLeaseAge discards the lease age gauge.
func (n *NopMetrics) RecordLeaseAge(_ /* seconds */ float64) {
	// No-op
}

// HistoryMetrics implementation

// RecordHistoryDepth discards the stack depth gauges.
func (n *NopMetrics) RecordHistoryDepth(_ /* past */, _ /* future */ int) {
	// No-op
}

// RecordHistoryEviction discards the eviction counter.
func (n *NopMetrics) RecordHistoryEviction() {
	// No-op
}

// RecordHistoryRestore discards the restore counter.
func (n *NopMetrics) RecordHistoryRestore(_ /* operation */ string) {
	// No-op
}

// StoreMetrics implementation

// RecordStoreOperation discards the store round-trip metric.
func (n *NopMetrics) RecordStoreOperation(_ /* operation */ string, _ /* duration */ float64, _ /* success */ bool) {
	// No-op
}

// RecordBackup discards the backup metric.
func (n *NopMetrics) RecordBackup(_ /* created */ bool) {
	// No-op
}

// RecordWatchEvent discards the watch event counter.
func (n *NopMetrics) RecordWatchEvent(_ /* kind */ string) {
	// No-op
}

// RecordWatchEventDropped discards the dropped event counter.
func (n *NopMetrics) RecordWatchEventDropped() {
	// No-op
}
