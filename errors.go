package sitzplatz

import "github.com/humphreyyy/sitzplatz/types"

// Sentinel errors returned by the Session.
//
// These alias the definitions in the types subpackage so that callers
// can match errors with errors.Is using either import path. Subpackages
// depend on types only, never on this root package, which keeps import
// cycles impossible.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrStoreRequired is returned when the snapshot store is nil.
	ErrStoreRequired = types.ErrStoreRequired

	// ErrIdentityRequired is returned when the session identity is empty.
	ErrIdentityRequired = types.ErrIdentityRequired

	// ErrSessionClosed is returned when operations are called after Close.
	ErrSessionClosed = types.ErrSessionClosed

	// ErrReadOnlySession is returned when a mutation is attempted on a
	// session opened without the exclusivity lease.
	ErrReadOnlySession = types.ErrReadOnlySession

	// ErrSnapshotInvalid is returned when a mutation would persist a
	// snapshot with blocking validation findings.
	ErrSnapshotInvalid = types.ErrSnapshotInvalid

	// ErrAccessDenied is returned when another holder owns a fresh lease.
	// Use types.AsAccessDenied to recover the holder details.
	ErrAccessDenied = types.ErrAccessDenied

	// ErrLeaseNotHeld is returned when the lease belongs to a different
	// identity or is not held at all.
	ErrLeaseNotHeld = types.ErrLeaseNotHeld

	// ErrLeaseCorrupt indicates an unreadable lease file.
	ErrLeaseCorrupt = types.ErrLeaseCorrupt

	// ErrNothingToUndo is returned when no earlier state is recorded.
	ErrNothingToUndo = types.ErrNothingToUndo

	// ErrNothingToRedo is returned when no undone state is recorded.
	ErrNothingToRedo = types.ErrNothingToRedo

	// ErrSnapshotCorrupt is returned when stored bytes cannot be decoded.
	ErrSnapshotCorrupt = types.ErrSnapshotCorrupt

	// ErrSnapshotIncomplete is returned when a loaded document is missing
	// a top-level section entirely.
	ErrSnapshotIncomplete = types.ErrSnapshotIncomplete

	// ErrInvalidWeek is returned for malformed week identifiers.
	ErrInvalidWeek = types.ErrInvalidWeek
)
