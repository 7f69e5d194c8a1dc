package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/humphreyyy/sitzplatz/internal/logger"
	"github.com/humphreyyy/sitzplatz/internal/metrics"
	"github.com/humphreyyy/sitzplatz/types"
)

// DefaultMaxArchive is how many archived snapshot versions the SQLite
// store retains before pruning the oldest.
const DefaultMaxArchive = 20

const archiveSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	taken_at TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT '',
	payload BLOB NOT NULL
);`

// SQLiteStore archives snapshot versions in a single-file SQLite
// database. Unlike FileStore it keeps every committed version up to a
// retention bound, so prior plans stay queryable after the fact.
//
// Load returns the newest version; Save appends one. The database is
// opened with a single connection since writers are serialized by the
// session anyway.
type SQLiteStore struct {
	db         *sql.DB
	path       string
	maxArchive int

	now     func() time.Time
	logger  types.Logger
	metrics types.StoreMetrics
}

var _ types.SnapshotStore = (*SQLiteStore)(nil)

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithMaxArchive bounds how many snapshot versions are retained.
// Non-positive keeps the default.
//
// Parameters:
//   - count: Number of versions to retain
//
// Returns:
//   - SQLiteOption: Configuration option
func WithMaxArchive(count int) SQLiteOption {
	return func(s *SQLiteStore) {
		if count > 0 {
			s.maxArchive = count
		}
	}
}

// WithSQLiteClock sets the time source used for version timestamps.
//
// Parameters:
//   - now: Replacement for time.Now
//
// Returns:
//   - SQLiteOption: Configuration option
func WithSQLiteClock(now func() time.Time) SQLiteOption {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSQLiteLogger sets the logger for archive operations.
//
// Parameters:
//   - log: Logger implementation
//
// Returns:
//   - SQLiteOption: Configuration option
func WithSQLiteLogger(log types.Logger) SQLiteOption {
	return func(s *SQLiteStore) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithSQLiteMetrics sets the metrics sink for archive operations.
//
// Parameters:
//   - collector: Metrics implementation
//
// Returns:
//   - SQLiteOption: Configuration option
func WithSQLiteMetrics(collector types.StoreMetrics) SQLiteOption {
	return func(s *SQLiteStore) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// NewSQLite opens (creating when absent) the archive database at path.
//
// Parameters:
//   - path: Database file location
//   - opts: Optional configuration
//
// Returns:
//   - *SQLiteStore: Initialized store
//   - error: Open, ping, or schema failure
//
// Example:
//
//	archive, err := store.NewSQLite("/srv/plans/teamA/archive.db")
//	if err != nil {
//	    return err
//	}
//	defer archive.Close()
func NewSQLite(path string, opts ...SQLiteOption) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("archive path is required")
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to ping archive: %w", err)
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to prepare archive schema: %w", err)
	}

	s := &SQLiteStore{
		db:         db,
		path:       path,
		maxArchive: DefaultMaxArchive,
		now:        time.Now,
		logger:     logger.NewNop(),
		metrics:    metrics.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// LockPath returns where the exclusivity lease for this archive lives,
// next to the database file.
func (s *SQLiteStore) LockPath() string {
	return s.path + ".lock"
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Load returns the newest archived snapshot, or a fresh empty snapshot
// when the archive holds no versions yet.
//
// Parameters:
//   - ctx: Query cancellation
//
// Returns:
//   - *types.StateSnapshot: Newest version or fresh snapshot
//   - error: Wrapped types.ErrSnapshotCorrupt for an undecodable
//     payload, or a query error
func (s *SQLiteStore) Load(ctx context.Context) (*types.StateSnapshot, error) {
	start := time.Now()
	snap, err := s.load(ctx)
	s.metrics.RecordStoreOperation("load", time.Since(start).Seconds(), err == nil)

	return snap, err
}

func (s *SQLiteStore) load(ctx context.Context) (*types.StateSnapshot, error) {
	var payload []byte
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots ORDER BY id DESC LIMIT 1`)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Info("empty archive, starting fresh", "path", s.path)

			return types.NewStateSnapshot(), nil
		}

		return nil, fmt.Errorf("failed to read archive: %w", err)
	}

	var snap types.StateSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSnapshotCorrupt, err)
	}

	return &snap, nil
}

// Save appends a snapshot version and prunes beyond the retention
// bound.
//
// Parameters:
//   - ctx: Query cancellation
//   - snap: Snapshot to archive
//
// Returns:
//   - error: Marshal or insert failure
func (s *SQLiteStore) Save(ctx context.Context, snap *types.StateSnapshot) error {
	start := time.Now()
	err := s.save(ctx, snap)
	s.metrics.RecordStoreOperation("save", time.Since(start).Seconds(), err == nil)

	return err
}

func (s *SQLiteStore) save(ctx context.Context, snap *types.StateSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (taken_at, author, payload) VALUES (?, ?, ?)`,
		s.now().UTC().Format(time.RFC3339Nano), snap.Meta.ModifiedBy, payload)
	if err != nil {
		return fmt.Errorf("failed to archive snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (SELECT id FROM snapshots ORDER BY id DESC LIMIT ?)`,
		s.maxArchive)
	if err != nil {
		s.logger.Warn("failed to prune archive", "path", s.path, "error", err)
	}

	return nil
}

// Versions returns the archived version count.
//
// Parameters:
//   - ctx: Query cancellation
//
// Returns:
//   - int: Number of retained versions
//   - error: Query failure
func (s *SQLiteStore) Versions(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count archive versions: %w", err)
	}

	return count, nil
}
