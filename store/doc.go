// Package store persists snapshots and watches them for outside
// changes.
//
// Two types.SnapshotStore implementations are provided. FileStore keeps
// the snapshot as an indented JSON document next to the lease file,
// writes through a temp-file rename so a failed save never damages the
// previous state, and rotates timestamped backups. SQLiteStore keeps an
// append-only snapshot archive in a SQLite database for deployments
// that prefer a single shared database file over a document tree.
//
// Monitor watches a FileStore directory with fsnotify and fans change
// events out to subscribers. Read-only sessions use it to notice when
// the holder's lease frees up or the snapshot moves underneath them.
package store
