// Package fingerprint computes stable content fingerprints of snapshots.
//
// Fingerprints drive cheap equality checks: dirty tracking between the
// working state and the last persisted state, cache keys for validation
// reports, and no-op detection before recording history entries.
package fingerprint

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/humphreyyy/sitzplatz/types"
)

// Of computes a 64-bit XXH3 fingerprint of the snapshot's content.
//
// The Meta section is excluded: two snapshots holding the same floor
// plan, roster and assignments fingerprint identically even when they
// were stamped by different sessions at different times. Map-valued
// fields serialize with sorted keys, so the result is deterministic
// across processes.
//
// Parameters:
//   - snap: Snapshot to fingerprint (nil fingerprints to 0)
//
// Returns:
//   - uint64: Content fingerprint
//   - error: Serialization failure (malformed weekday values)
func Of(snap *types.StateSnapshot) (uint64, error) {
	if snap == nil {
		return 0, nil
	}

	// Shallow copy is enough: only Meta is replaced, sections are read.
	content := *snap
	content.Meta = types.SnapshotMeta{}

	data, err := json.Marshal(&content)
	if err != nil {
		return 0, fmt.Errorf("fingerprint snapshot: %w", err)
	}

	return xxh3.Hash(data), nil
}

// OfBytes computes the 64-bit XXH3 fingerprint of raw bytes.
func OfBytes(data []byte) uint64 {
	return xxh3.Hash(data)
}

// Equal reports whether two snapshots fingerprint to the same value.
// Serialization failures report false.
func Equal(a, b *types.StateSnapshot) bool {
	fa, err := Of(a)
	if err != nil {
		return false
	}
	fb, err := Of(b)
	if err != nil {
		return false
	}

	return fa == fb
}
