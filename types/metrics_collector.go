package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called from background goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	SessionMetrics
	EngineMetrics
	LeaseMetrics
	HistoryMetrics
	StoreMetrics
}

// SessionMetrics defines metrics for session-level operations.
type SessionMetrics interface {
	// RecordCommit records an attempted mutation.
	//
	// Parameters:
	//   - operation: Mutation kind ("commit", "plan_week", "override", "undo", "redo")
	//   - duration: Time taken in seconds
	//   - success: true if the mutation was accepted and persisted
	RecordCommit(operation string, duration float64, success bool)

	// RecordValidation records the outcome of a full snapshot validation.
	//
	// Parameters:
	//   - violations: Number of blocking findings
	//   - advisories: Number of informational findings
	RecordValidation(violations, advisories int)
}

// EngineMetrics defines metrics for assignment engine runs.
type EngineMetrics interface {
	// RecordPlacementRun records one day's placement outcome.
	//
	// Parameters:
	//   - placed: Number of occupants that received a resource
	//   - conflicts: Number of occupants left without one
	RecordPlacementRun(placed, conflicts int)

	// RecordOccupancyRate sets the most recent weekly occupancy rate
	// (gauge metric, percentage 0-100).
	RecordOccupancyRate(rate float64)
}

// LeaseMetrics defines metrics for exclusivity lease operations.
type LeaseMetrics interface {
	// RecordLeaseAcquire records an acquire attempt.
	//
	// Parameters:
	//   - outcome: "created", "reclaimed" or "denied"
	RecordLeaseAcquire(outcome string)

	// RecordLeaseRefresh records a heartbeat refresh attempt.
	RecordLeaseRefresh(success bool)

	// RecordLeaseAge sets the age of the currently held lease in seconds
	// (gauge metric).
	RecordLeaseAge(seconds float64)
}

// HistoryMetrics defines metrics for undo/redo bookkeeping.
type HistoryMetrics interface {
	// RecordHistoryDepth sets the current stack depths (gauge metrics).
	RecordHistoryDepth(past, future int)

	// RecordHistoryEviction records the eviction of the oldest entry
	// when the past stack is full.
	RecordHistoryEviction()

	// RecordHistoryRestore records a completed restore.
	//
	// Parameters:
	//   - operation: "undo" or "redo"
	RecordHistoryRestore(operation string)
}

// StoreMetrics defines metrics for snapshot persistence and watching.
type StoreMetrics interface {
	// RecordStoreOperation records one store round trip.
	//
	// Parameters:
	//   - operation: "load" or "save"
	//   - duration: Time taken in seconds
	//   - success: true if the operation completed
	RecordStoreOperation(operation string, duration float64, success bool)

	// RecordBackup records a backup attempt (skipped ones report false).
	RecordBackup(created bool)

	// RecordWatchEvent records a change event delivered to subscribers.
	//
	// Parameters:
	//   - kind: Event kind ("snapshot", "lease", "lease_removed")
	RecordWatchEvent(kind string)

	// RecordWatchEventDropped records an event dropped because a
	// subscriber channel was full.
	RecordWatchEventDropped()
}
