package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/humphreyyy/sitzplatz/internal/logger"
	"github.com/humphreyyy/sitzplatz/internal/metrics"
	"github.com/humphreyyy/sitzplatz/types"
)

// Defaults for the file store layout and backup policy.
const (
	DefaultDataFileName   = "data.json"
	DefaultLockFileName   = "data.lock"
	DefaultBackupDirName  = "backups"
	DefaultBackupInterval = 5 * time.Minute
	DefaultMaxBackups     = 10
)

// FileStore persists the snapshot as one JSON document in a directory
// on the shared filesystem.
//
// Saves go through a temp file and an atomic rename, so a crash or a
// full disk leaves the previous document intact. Before a save
// replaces the document, the old version is copied into the backup
// directory, rate limited to one backup per BackupInterval; the oldest
// backups are pruned beyond MaxBackups.
type FileStore struct {
	dir        string
	dataName   string
	lockName   string
	backupName string
	maxBackups int

	limiter *rate.Limiter
	now     func() time.Time
	logger  types.Logger
	metrics types.StoreMetrics

	mu sync.Mutex
}

// Compile-time assertion that FileStore implements SnapshotStore.
var _ types.SnapshotStore = (*FileStore)(nil)

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithDataFileName overrides the snapshot document name.
//
// Parameters:
//   - name: File name inside the store directory
//
// Returns:
//   - FileOption: Configuration option
func WithDataFileName(name string) FileOption {
	return func(s *FileStore) {
		if name != "" {
			s.dataName = name
		}
	}
}

// WithLockFileName overrides the lease file name reported by LockPath.
//
// Parameters:
//   - name: File name inside the store directory
//
// Returns:
//   - FileOption: Configuration option
func WithLockFileName(name string) FileOption {
	return func(s *FileStore) {
		if name != "" {
			s.lockName = name
		}
	}
}

// WithBackupInterval sets the minimum spacing between two backups.
// Non-positive means a backup before every save.
//
// Parameters:
//   - interval: Minimum time between backups
//
// Returns:
//   - FileOption: Configuration option
func WithBackupInterval(interval time.Duration) FileOption {
	return func(s *FileStore) {
		if interval > 0 {
			s.limiter = rate.NewLimiter(rate.Every(interval), 1)
		} else {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
		}
	}
}

// WithMaxBackups bounds the backup directory. Zero disables backups
// entirely; negative keeps the default.
//
// Parameters:
//   - count: Number of backup files to retain
//
// Returns:
//   - FileOption: Configuration option
func WithMaxBackups(count int) FileOption {
	return func(s *FileStore) {
		if count >= 0 {
			s.maxBackups = count
		}
	}
}

// WithFileClock sets the time source used for backup names.
//
// Parameters:
//   - now: Replacement for time.Now
//
// Returns:
//   - FileOption: Configuration option
func WithFileClock(now func() time.Time) FileOption {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFileLogger sets the logger for store operations.
//
// Parameters:
//   - log: Logger implementation
//
// Returns:
//   - FileOption: Configuration option
func WithFileLogger(log types.Logger) FileOption {
	return func(s *FileStore) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithFileMetrics sets the metrics sink for store operations.
//
// Parameters:
//   - collector: Metrics implementation
//
// Returns:
//   - FileOption: Configuration option
func WithFileMetrics(collector types.StoreMetrics) FileOption {
	return func(s *FileStore) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// NewFile creates a file store rooted at dir.
//
// The directory and its backup subdirectory are created when missing.
//
// Parameters:
//   - dir: Store directory on the shared filesystem
//   - opts: Optional configuration
//
// Returns:
//   - *FileStore: Initialized store
//   - error: Directory creation failure
//
// Example:
//
//	st, err := store.NewFile("/srv/plans/teamA")
//	if err != nil {
//	    return err
//	}
//	snap, err := st.Load(ctx)
func NewFile(dir string, opts ...FileOption) (*FileStore, error) {
	s := &FileStore{
		dir:        dir,
		dataName:   DefaultDataFileName,
		lockName:   DefaultLockFileName,
		backupName: DefaultBackupDirName,
		maxBackups: DefaultMaxBackups,
		limiter:    rate.NewLimiter(rate.Every(DefaultBackupInterval), 1),
		now:        time.Now,
		logger:     logger.NewNop(),
		metrics:    metrics.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(s.BackupDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return s, nil
}

// DataPath returns the snapshot document location.
func (s *FileStore) DataPath() string {
	return filepath.Join(s.dir, s.dataName)
}

// LockPath returns the lease file location beside the document.
func (s *FileStore) LockPath() string {
	return filepath.Join(s.dir, s.lockName)
}

// BackupDir returns the backup directory location.
func (s *FileStore) BackupDir() string {
	return filepath.Join(s.dir, s.backupName)
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Load reads the snapshot document.
//
// An absent document yields a fresh empty snapshot rather than an
// error, so first use needs no setup step. An unreadable document is
// stashed into the backup directory before the error returns, keeping
// the bytes around for manual recovery while the next save starts
// clean.
//
// Parameters:
//   - ctx: Cancellation check before the read
//
// Returns:
//   - *types.StateSnapshot: The stored or fresh snapshot
//   - error: Wrapped types.ErrSnapshotCorrupt for undecodable bytes,
//     or an I/O error
func (s *FileStore) Load(ctx context.Context) (*types.StateSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	snap, err := s.load()
	s.metrics.RecordStoreOperation("load", time.Since(start).Seconds(), err == nil)

	return snap, err
}

func (s *FileStore) load() (*types.StateSnapshot, error) {
	data, err := os.ReadFile(s.DataPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("no data file yet, starting fresh", "path", s.DataPath())

			return types.NewStateSnapshot(), nil
		}

		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap types.StateSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		stash := s.stashCorrupt()
		s.logger.Error("snapshot document undecodable",
			"path", s.DataPath(), "stashed_to", stash, "error", err)

		return nil, fmt.Errorf("%w: %v", types.ErrSnapshotCorrupt, err)
	}

	return &snap, nil
}

// Save atomically replaces the snapshot document.
//
// Either the new document lands completely or the previous one stays
// readable; there is no in-between state for other processes to
// observe.
//
// Parameters:
//   - ctx: Cancellation check before the write
//   - snap: Snapshot to persist
//
// Returns:
//   - error: Marshal or I/O failure; the prior document is untouched
func (s *FileStore) Save(ctx context.Context, snap *types.StateSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	err := s.save(snap)
	s.metrics.RecordStoreOperation("save", time.Since(start).Seconds(), err == nil)

	return err
}

func (s *FileStore) save(snap *types.StateSnapshot) error {
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	s.backupCurrent()

	tmp, err := os.CreateTemp(s.dir, ".data-*")
	if err != nil {
		return fmt.Errorf("failed to stage snapshot: %w", err)
	}

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to stage snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to stage snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to stage snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.DataPath()); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	s.logger.Debug("snapshot saved", "path", s.DataPath(), "bytes", len(payload))

	return nil
}

// backupCurrent copies the existing document into the backup directory,
// honoring the rate limit and retention bound. Backup failures are
// logged, never propagated: an old copy is worth less than the save.
func (s *FileStore) backupCurrent() {
	if s.maxBackups == 0 {
		return
	}
	if _, err := os.Stat(s.DataPath()); err != nil {
		return
	}
	if !s.limiter.Allow() {
		s.metrics.RecordBackup(false)

		return
	}

	name := fmt.Sprintf("data_%s.json", s.now().Format("20060102_150405"))
	dst := filepath.Join(s.BackupDir(), name)
	if err := copyFile(s.DataPath(), dst); err != nil {
		s.logger.Warn("backup failed", "path", dst, "error", err)
		s.metrics.RecordBackup(false)

		return
	}

	s.logger.Debug("backup created", "path", dst)
	s.metrics.RecordBackup(true)
	s.pruneBackups()
}

// pruneBackups deletes the oldest backups beyond the retention bound.
func (s *FileStore) pruneBackups() {
	entries, err := os.ReadDir(s.BackupDir())
	if err != nil {
		return
	}

	type backup struct {
		path    string
		modTime time.Time
	}

	var backups []backup
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "data_") || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{
			path:    filepath.Join(s.BackupDir(), entry.Name()),
			modTime: info.ModTime(),
		})
	}

	if len(backups) <= s.maxBackups {
		return
	}

	slices.SortFunc(backups, func(a, b backup) int {
		return b.modTime.Compare(a.modTime)
	})
	for _, old := range backups[s.maxBackups:] {
		if err := os.Remove(old.path); err != nil {
			s.logger.Warn("failed to prune backup", "path", old.path, "error", err)
		}
	}
}

// stashCorrupt moves the unreadable document aside so the next save
// starts from a clean slate. Returns the stash path, or empty when
// stashing itself failed.
func (s *FileStore) stashCorrupt() string {
	name := fmt.Sprintf("data_CORRUPT_%s.json", s.now().Format("20060102_150405"))
	dst := filepath.Join(s.BackupDir(), name)
	if err := copyFile(s.DataPath(), dst); err != nil {
		s.logger.Warn("failed to stash corrupt document", "path", dst, "error", err)

		return ""
	}

	return dst
}

// Backups lists the backup files, newest first.
//
// Returns:
//   - []string: Absolute paths of retained backups
//   - error: Directory read failure
func (s *FileStore) Backups() ([]string, error) {
	entries, err := os.ReadDir(s.BackupDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	type backup struct {
		path    string
		modTime time.Time
	}

	var backups []backup
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "data_") || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{
			path:    filepath.Join(s.BackupDir(), entry.Name()),
			modTime: info.ModTime(),
		})
	}

	slices.SortFunc(backups, func(a, b backup) int {
		return b.modTime.Compare(a.modTime)
	})

	paths := make([]string, len(backups))
	for i, b := range backups {
		paths[i] = b.path
	}

	return paths, nil
}

// copyFile duplicates src to dst, replacing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)

		return err
	}

	return out.Close()
}
