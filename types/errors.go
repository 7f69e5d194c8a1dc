package types

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the Sitzplatz library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Session, Lease, History, Store)
//   - Use consistent messages across similar error types

// Session errors - Public API errors returned by the Session component.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreRequired is returned when the snapshot store is nil.
	ErrStoreRequired = errors.New("snapshot store is required")

	// ErrIdentityRequired is returned when a session identity is empty.
	ErrIdentityRequired = errors.New("session identity is required")

	// ErrSessionClosed is returned when operations are called after Close.
	ErrSessionClosed = errors.New("session closed")

	// ErrReadOnlySession is returned when a mutation is attempted on a
	// session opened without the exclusivity lease.
	ErrReadOnlySession = errors.New("session is read-only")

	// ErrSnapshotInvalid is returned when a mutation would persist a
	// snapshot with blocking validation findings. The returned error
	// carries the full report via errors.As.
	ErrSnapshotInvalid = errors.New("snapshot has blocking validation findings")
)

// Lease errors - Exclusivity arbitration errors.
var (
	// ErrAccessDenied is returned when another holder owns a fresh lease.
	// Use AsAccessDenied to recover the holder details.
	ErrAccessDenied = errors.New("exclusive access denied")

	// ErrLeaseNotHeld is returned when Release or Refresh finds the
	// lease held by a different identity or not held at all.
	ErrLeaseNotHeld = errors.New("lease not held by this identity")

	// ErrLeaseCorrupt indicates an unreadable lease file. Corrupt leases
	// are reclaim-eligible, never fatal: the next Acquire takes them over.
	ErrLeaseCorrupt = errors.New("lease file corrupt")
)

// History errors - Undo/redo bookkeeping errors.
var (
	// ErrNothingToUndo is returned when no earlier state is recorded.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned when no undone state is recorded.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Store errors - Snapshot persistence errors.
var (
	// ErrSnapshotCorrupt is returned when stored bytes cannot be decoded.
	ErrSnapshotCorrupt = errors.New("stored snapshot corrupt")

	// ErrSnapshotIncomplete is returned when a loaded document is missing
	// a top-level section entirely (nil, as opposed to present but empty).
	ErrSnapshotIncomplete = errors.New("snapshot missing required sections")
)

// Common errors - Shared parsing and lookup errors.
var (
	// ErrInvalidWeek is returned for malformed or nonexistent week identifiers.
	ErrInvalidWeek = errors.New("invalid week identifier")

	// ErrInvalidWeekday is returned for unknown weekday names or values.
	ErrInvalidWeekday = errors.New("invalid weekday")

	// ErrInvalidDate is returned for malformed date strings.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownOccupant is returned when an operation names an occupant
	// absent from the snapshot.
	ErrUnknownOccupant = errors.New("unknown occupant")

	// ErrUnknownResource is returned when an operation names a resource
	// absent from the snapshot.
	ErrUnknownResource = errors.New("unknown resource")
)

// AccessDeniedError reports a failed lease acquisition against a fresh
// holder. It matches ErrAccessDenied under errors.Is.
type AccessDeniedError struct {
	// Holder describes the current lease owner.
	Holder LeaseInfo

	// Age is how long the holder's lease had been unrefreshed at the
	// time of the attempt. Always below the staleness timeout, or the
	// lease would have been reclaimed instead.
	Age time.Duration
}

// Error implements the error interface.
func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("exclusive access denied: held by %q on %s (pid %d) for %s",
		e.Holder.Identity, e.Holder.Host, e.Holder.PID, e.Age.Round(time.Second))
}

// Is reports whether the target is ErrAccessDenied, letting callers use
// errors.Is without knowing the concrete type.
func (e *AccessDeniedError) Is(target error) bool {
	return target == ErrAccessDenied
}

// AsAccessDenied extracts holder details from an acquisition error.
//
// Parameters:
//   - err: The error returned by Acquire
//
// Returns:
//   - *AccessDeniedError: The denial details
//   - bool: true if the error chain contains an AccessDeniedError
func AsAccessDenied(err error) (*AccessDeniedError, bool) {
	var denied *AccessDeniedError
	if errors.As(err, &denied) {
		return denied, true
	}

	return nil, false
}
