package types

import "context"

// SnapshotStore persists the complete state document.
//
// Implementations must be safe for sequential use by a single session;
// the library never calls Load and Save concurrently. A store that
// finds no existing document on Load should return a fresh empty
// snapshot rather than an error, so that first-run callers start from
// a usable state.
type SnapshotStore interface {
	// Load reads the current snapshot.
	//
	// Returns:
	//   - *StateSnapshot: The stored document, or a fresh empty one if
	//     none exists yet
	//   - error: Wrapped ErrSnapshotCorrupt when the stored bytes cannot
	//     be decoded
	Load(ctx context.Context) (*StateSnapshot, error)

	// Save atomically replaces the stored snapshot. A failed Save must
	// leave the previously stored document readable.
	Save(ctx context.Context, snap *StateSnapshot) error
}
