package sitzplatz

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/humphreyyy/sitzplatz/engine"
	"github.com/humphreyyy/sitzplatz/history"
	"github.com/humphreyyy/sitzplatz/internal/fingerprint"
	"github.com/humphreyyy/sitzplatz/internal/hooks"
	"github.com/humphreyyy/sitzplatz/internal/logger"
	"github.com/humphreyyy/sitzplatz/internal/metrics"
	"github.com/humphreyyy/sitzplatz/lease"
	"github.com/humphreyyy/sitzplatz/store"
	"github.com/humphreyyy/sitzplatz/types"
	"github.com/humphreyyy/sitzplatz/validate"
)

// ErrLeasePathRequired is returned when Open cannot determine where the
// lease file should live. Stores without a LockPath method need the
// WithLeasePath option.
var ErrLeasePathRequired = errors.New("lease path required: store has no natural location, use WithLeasePath")

// LockPather is implemented by stores that carry a natural lease file
// location beside the stored document.
type LockPather interface {
	LockPath() string
}

// Session is the single entry point for working with a shared planning
// document. It ties the collaborators together:
//   - a SnapshotStore holding the document
//   - the exclusivity lease guarding against concurrent writers
//   - the placement engine for weekly planning
//   - validation gating every mutation
//   - undo/redo history
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Mutations are serialized; reads share a lock
//
// Lifecycle:
//   - Create with Open (writer) or OpenReadOnly (observer)
//   - Mutate through Commit, PlanWeek, Override, Unassign, Undo, Redo
//   - Call Close to release the lease
//
// Every accepted mutation is validated, stamped, persisted and recorded
// in history before the call returns; there is no separate save step.
type Session struct {
	cfg      Config
	store    types.SnapshotStore
	identity string
	readOnly bool

	// Collaborators; arbiter, keeper and history are nil for read-only
	// sessions (arbiter may still be present for Holder queries).
	arbiter *lease.Arbiter
	keeper  *lease.Keeper
	history *history.History
	engine  *engine.Engine
	reports *cache.Cache

	hooks   *Hooks
	metrics MetricsCollector
	logger  Logger
	now     func() time.Time

	// Lifecycle context handed to hooks; cancelled on Close.
	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.RWMutex
	snap      *types.StateSnapshot
	lastSaved uint64
	closed    bool
}

// Open loads the snapshot, acquires the exclusivity lease and returns a
// writable session.
//
// The loaded document is validated immediately: a structurally
// incomplete document fails Open, while content violations are logged
// and tolerated so a damaged document can be opened and repaired.
// A stale or corrupt lease left by a crashed process is taken over;
// a fresh lease held by someone else fails with ErrAccessDenied
// (use types.AsAccessDenied for the holder's details).
//
// Parameters:
//   - ctx: Context for the initial load and lease acquisition
//   - cfg: Session configuration (defaults applied in place)
//   - st: Store holding the snapshot document
//   - identity: Who is opening, e.g. "alice@laptop"
//   - opts: Optional dependencies (logger, metrics, hooks, clock)
//
// Returns:
//   - *Session: Writable session holding the lease
//   - error: Load, validation or lease failure
//
// Example:
//
//	st, _ := store.NewFile("/srv/plans/team-a")
//	cfg := sitzplatz.DefaultConfig()
//	session, err := sitzplatz.Open(ctx, &cfg, st, "alice@laptop")
//	if err != nil {
//	    if denied, ok := types.AsAccessDenied(err); ok {
//	        log.Fatalf("locked by %s for %s", denied.Holder.Identity, denied.Age)
//	    }
//	    log.Fatal(err)
//	}
//	defer session.Close()
func Open(ctx context.Context, cfg *Config, st types.SnapshotStore, identity string, opts ...Option) (*Session, error) {
	if identity == "" {
		return nil, ErrIdentityRequired
	}

	return open(ctx, cfg, st, identity, false, opts)
}

// OpenReadOnly loads the snapshot without acquiring the lease.
//
// The returned session serves reads, previews and validation; every
// mutation returns ErrReadOnlySession. Combine with store.Monitor and
// Reload to follow changes made by the lease holder.
//
// Parameters:
//   - ctx: Context for the initial load
//   - cfg: Session configuration (defaults applied in place)
//   - st: Store holding the snapshot document
//   - opts: Optional dependencies (logger, metrics, hooks, clock)
//
// Returns:
//   - *Session: Read-only session
//   - error: Load or validation failure
func OpenReadOnly(ctx context.Context, cfg *Config, st types.SnapshotStore, opts ...Option) (*Session, error) {
	return open(ctx, cfg, st, "", true, opts)
}

// OpenDir builds a file store in dir from the Store config section and
// opens a writable session on it. This is the one-call path for the
// common deployment: one directory on a shared filesystem.
//
// Parameters:
//   - ctx: Context for the initial load and lease acquisition
//   - dir: Store directory, created when missing
//   - cfg: Session configuration (defaults applied in place)
//   - identity: Who is opening
//   - opts: Optional dependencies
//
// Returns:
//   - *Session: Writable session holding the lease
//   - error: Store setup, load, validation or lease failure
func OpenDir(ctx context.Context, dir string, cfg *Config, identity string, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if identity == "" {
		return nil, ErrIdentityRequired
	}
	SetDefaults(cfg)

	st, err := fileStoreFor(dir, cfg, opts)
	if err != nil {
		return nil, err
	}

	return Open(ctx, cfg, st, identity, opts...)
}

// OpenDirReadOnly builds a file store in dir and opens a read-only
// session on it.
func OpenDirReadOnly(ctx context.Context, dir string, cfg *Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	SetDefaults(cfg)

	st, err := fileStoreFor(dir, cfg, opts)
	if err != nil {
		return nil, err
	}

	return OpenReadOnly(ctx, cfg, st, opts...)
}

// fileStoreFor builds the file store OpenDir and OpenDirReadOnly share,
// wired with the same optional dependencies the session will use.
func fileStoreFor(dir string, cfg *Config, opts []Option) (*store.FileStore, error) {
	options := &sessionOptions{}
	for _, opt := range opts {
		opt(options)
	}

	log := options.logger
	if log == nil {
		log = logger.NewNop()
	}
	collector := options.metrics
	if collector == nil {
		collector = metrics.NewNop()
	}
	clock := options.clock
	if clock == nil {
		clock = time.Now
	}

	maxBackups := cfg.Store.MaxBackups
	if maxBackups < 0 {
		maxBackups = 0
	}

	return store.NewFile(dir,
		store.WithDataFileName(cfg.Store.DataFileName),
		store.WithLockFileName(cfg.Lease.FileName),
		store.WithBackupInterval(cfg.Store.BackupInterval),
		store.WithMaxBackups(maxBackups),
		store.WithFileLogger(log),
		store.WithFileMetrics(collector),
		store.WithFileClock(clock),
	)
}

func open(ctx context.Context, cfg *Config, st types.SnapshotStore, identity string, readOnly bool, opts []Option) (*Session, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if st == nil {
		return nil, ErrStoreRequired
	}

	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	options := &sessionOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Safe defaults for optional dependencies avoid nil checks everywhere.
	collector := options.metrics
	if collector == nil {
		collector = metrics.NewNop()
	}

	log := options.logger
	if log == nil {
		log = logger.NewNop()
	}

	cfg.ValidateWithWarnings(log)

	hooksInstance := options.hooks
	if hooksInstance == nil {
		nop := hooks.NewNop()
		hooksInstance = &nop
	}

	clock := options.clock
	if clock == nil {
		clock = time.Now
	}

	s := &Session{
		cfg:      *cfg,
		store:    st,
		identity: identity,
		readOnly: readOnly,
		engine:   engine.New(engine.WithLogger(log), engine.WithMetrics(collector)),
		reports:  cache.New(cfg.Engine.ValidationCacheTTL, 2*cfg.Engine.ValidationCacheTTL),
		hooks:    hooksInstance,
		metrics:  collector,
		logger:   log,
		now:      clock,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	snap, err := st.Load(ctx)
	if err != nil {
		s.cancel()

		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	report, err := validate.All(snap, types.DateOf(clock()))
	if err != nil {
		s.cancel()

		return nil, err
	}
	collector.RecordValidation(len(report.Violations()), len(report.Advisories()))
	if !report.OK() {
		log.Warn("loaded snapshot has blocking findings, mutations will be rejected until repaired",
			"violations", len(report.Violations()))
	}
	s.snap = snap

	if fp, ferr := fingerprint.Of(snap); ferr == nil {
		s.lastSaved = fp
	}

	leasePath := options.leasePath
	if leasePath == "" {
		if lp, ok := st.(LockPather); ok {
			leasePath = lp.LockPath()
		}
	}

	if readOnly {
		// No lease, but keep an arbiter around for Holder queries when
		// the store exposes a location.
		if leasePath != "" {
			s.arbiter = lease.New(leasePath,
				lease.WithTimeout(cfg.Lease.Timeout),
				lease.WithClock(clock),
				lease.WithLogger(log),
				lease.WithMetrics(collector))
		}

		log.Info("session opened read-only",
			"occupants", len(snap.Occupants), "assignments", len(snap.Assignments))

		return s, nil
	}

	if leasePath == "" {
		s.cancel()

		return nil, ErrLeasePathRequired
	}

	s.arbiter = lease.New(leasePath,
		lease.WithTimeout(cfg.Lease.Timeout),
		lease.WithClock(clock),
		lease.WithLogger(log),
		lease.WithMetrics(collector))

	grant, err := s.arbiter.Acquire(identity)
	if err != nil {
		s.cancel()

		return nil, err
	}

	if grant.Reclaimed {
		if grant.ReclaimedFrom != nil {
			log.Warn("took over stale lease",
				"previous_holder", grant.ReclaimedFrom.Identity,
				"previous_host", grant.ReclaimedFrom.Host)
			s.fireLeaseReclaimed(*grant.ReclaimedFrom)
		} else {
			log.Warn("took over corrupt lease file", "path", s.arbiter.Path())
		}
	}

	s.keeper = lease.NewKeeper(s.arbiter, identity, cfg.Lease.RefreshInterval)
	if err := s.keeper.Start(s.ctx); err != nil {
		if rerr := s.arbiter.Release(identity); rerr != nil {
			log.Error("failed to release lease after keeper failure", "error", rerr)
		}
		s.cancel()

		return nil, fmt.Errorf("failed to start lease keeper: %w", err)
	}

	s.history = history.New(cfg.History.MaxDepth, log, collector)
	s.history.Record(snap)

	log.Info("session opened",
		"identity", identity,
		"occupants", len(snap.Occupants),
		"resources", len(snap.Resources),
		"assignments", len(snap.Assignments))

	return s, nil
}

// Identity returns who opened the session. Empty for read-only sessions.
func (s *Session) Identity() string {
	return s.identity
}

// ReadOnly reports whether the session was opened without the lease.
func (s *Session) ReadOnly() bool {
	return s.readOnly
}

// Snapshot returns a deep copy of the current state. The copy is the
// caller's to keep or modify; feeding changes back requires Commit.
func (s *Session) Snapshot() *StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.Clone()
}

// Holder reports the current lease state, whoever owns it.
//
// Returns:
//   - LeaseInfo: Holder details when a lease file exists
//   - bool: true when a parseable lease file exists
//   - error: Wrapped ErrLeaseCorrupt for an unreadable file
func (s *Session) Holder() (LeaseInfo, bool, error) {
	if s.arbiter == nil {
		return LeaseInfo{}, false, nil
	}

	return s.arbiter.Holder()
}

// Validate checks the current snapshot and returns the full report.
//
// Reports are cached by content fingerprint until the snapshot changes
// or the cache TTL passes, so repeated calls on an unchanged document
// are cheap.
//
// Returns:
//   - validate.Report: All findings, violations and advisories
//   - error: Structural failure only (incomplete snapshot)
func (s *Session) Validate() (validate.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fp, ferr := fingerprint.Of(s.snap)
	if ferr == nil {
		if cached, ok := s.reports.Get(strconv.FormatUint(fp, 16)); ok {
			return cached.(validate.Report), nil
		}
	}

	report, err := validate.All(s.snap, types.DateOf(s.now()))
	if err != nil {
		return validate.Report{}, err
	}

	s.metrics.RecordValidation(len(report.Violations()), len(report.Advisories()))
	if ferr == nil {
		s.reports.Set(strconv.FormatUint(fp, 16), report, cache.DefaultExpiration)
	}

	return report, nil
}

// PlanPreview computes a week's placement without touching the stored
// state. Works on read-only sessions; PlanWeek commits the same result.
//
// Parameters:
//   - week: ISO week to plan
//
// Returns:
//   - *engine.WeekResult: Placements and conflicts per day
//   - error: Wrapped types.ErrInvalidWeek for malformed identifiers
func (s *Session) PlanPreview(week Week) (*engine.WeekResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.planLocked(s.snap, week)
}

// planLocked runs the engine for one week against the given snapshot,
// seeding continuity from the previous week's stored assignments.
func (s *Session) planLocked(snap *types.StateSnapshot, week Week) (*engine.WeekResult, error) {
	prev, err := week.Prev()
	if err != nil {
		return nil, err
	}

	return s.engine.AssignWeek(snap.Occupants, snap.Resources, week, snap.AssignmentsFor(prev))
}

// Statistics summarizes a planning result against the current roster
// and floor plan.
//
// Parameters:
//   - result: A result returned by PlanWeek or PlanPreview
//
// Returns:
//   - engine.Stats: Occupancy and conflict figures
func (s *Session) Statistics(result *engine.WeekResult) engine.Stats {
	if result == nil {
		return engine.Stats{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.engine.Statistics(result, s.snap.Occupants, s.snap.Resources)
}

// Commit applies a caller-supplied edit to a private copy of the state,
// validates the outcome and persists it.
//
// The callback receives a deep copy; returning an error discards the
// copy and nothing changes. A callback outcome with blocking validation
// findings is rejected with an error matching ErrSnapshotInvalid that
// carries the full report via errors.As (*validate.Error). Edits that
// change nothing are accepted without a save or history entry.
//
// Parameters:
//   - ctx: Context for the persist step
//   - fn: Edit applied to the draft snapshot
//
// Returns:
//   - error: Guard, callback, validation or persist failure
//
// Example:
//
//	err := session.Commit(ctx, func(snap *sitzplatz.StateSnapshot) error {
//	    snap.Occupants = append(snap.Occupants, types.Occupant{
//	        ID: "occ-9", Name: "Ida", Pattern: types.EveryDay(),
//	    })
//	    return nil
//	})
func (s *Session) Commit(ctx context.Context, fn func(*StateSnapshot) error) error {
	if fn == nil {
		return fmt.Errorf("commit requires an edit callback")
	}

	return s.mutate(ctx, "commit", fn)
}

// PlanWeek plans one week and commits the resulting placements,
// replacing whatever assignments the week held before.
//
// Continuity carries over from the previous week: occupants keep their
// resource where possible, and go first when the pool runs short.
//
// Parameters:
//   - ctx: Context for the persist step
//   - week: ISO week to plan
//
// Returns:
//   - *engine.WeekResult: Placements and conflicts per day
//   - error: Guard, planning, validation or persist failure
func (s *Session) PlanWeek(ctx context.Context, week Week) (*engine.WeekResult, error) {
	var result *engine.WeekResult

	err := s.mutate(ctx, "plan_week", func(draft *types.StateSnapshot) error {
		res, err := s.planLocked(draft, week)
		if err != nil {
			return err
		}
		draft.ReplaceWeek(week, res.Assignments())
		result = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Override places one occupant manually, replacing that occupant's
// existing placement in the slot if any. The result passes the same
// validation gate as every mutation: double-booking a resource or
// naming unknown records is rejected with the full report.
//
// Parameters:
//   - ctx: Context for the persist step
//   - a: The placement to enforce
//
// Returns:
//   - error: Guard, validation or persist failure
func (s *Session) Override(ctx context.Context, a Assignment) error {
	return s.mutate(ctx, "override", func(draft *types.StateSnapshot) error {
		draft.SetAssignment(a)

		return nil
	})
}

// Unassign removes one occupant's placement in the given slot. Removing
// a placement that does not exist is a no-op.
//
// Parameters:
//   - ctx: Context for the persist step
//   - week: ISO week of the slot
//   - day: Weekday of the slot
//   - occupantID: Whose placement to remove
//
// Returns:
//   - error: Guard, validation or persist failure
func (s *Session) Unassign(ctx context.Context, week Week, day Weekday, occupantID string) error {
	return s.mutate(ctx, "override", func(draft *types.StateSnapshot) error {
		draft.RemoveAssignment(week, day, occupantID)

		return nil
	})
}

// Undo restores the state before the newest mutation and persists it.
//
// Returns:
//   - error: ErrNothingToUndo when no earlier state is recorded, or a
//     persist failure (history is rewound to stay aligned)
func (s *Session) Undo(ctx context.Context) error {
	return s.restore(ctx, "undo")
}

// Redo re-applies the most recently undone mutation and persists it.
//
// Returns:
//   - error: ErrNothingToRedo when no undone state is recorded, or a
//     persist failure (history is rewound to stay aligned)
func (s *Session) Redo(ctx context.Context) error {
	return s.restore(ctx, "redo")
}

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.history != nil && s.history.CanUndo()
}

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.history != nil && s.history.CanRedo()
}

// Dirty reports whether the in-memory state differs from the last
// persisted document. Every accepted mutation persists immediately, so
// this is false except after a failed save.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fp, err := fingerprint.Of(s.snap)

	return err != nil || fp != s.lastSaved
}

// Reload replaces the in-memory state with the stored document.
//
// Read-only sessions call this when store.Monitor reports a change.
// On a writable session the reloaded state is recorded in history, so
// an unwanted external edit can be undone.
//
// Parameters:
//   - ctx: Context for the load
//
// Returns:
//   - error: Load failure or structurally incomplete document
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload snapshot: %w", err)
	}

	report, err := validate.All(snap, types.DateOf(s.now()))
	if err != nil {
		return err
	}
	if !report.OK() {
		s.logger.Warn("reloaded snapshot has blocking findings",
			"violations", len(report.Violations()))
	}

	s.snap = snap
	if fp, ferr := fingerprint.Of(snap); ferr == nil {
		s.lastSaved = fp
	}
	if s.history != nil {
		s.history.Record(snap)
	}

	s.logger.Info("snapshot reloaded",
		"occupants", len(snap.Occupants), "assignments", len(snap.Assignments))

	return nil
}

// Close stops the lease keeper, releases the lease and marks the
// session closed. Reads keep working on the last known state; mutations
// return ErrSessionClosed. Closing twice is a no-op.
//
// Returns:
//   - error: Lease release failure
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return nil
	}
	s.closed = true
	keeper := s.keeper
	arbiter := s.arbiter
	s.mu.Unlock()

	var errs []error

	if keeper != nil {
		if err := keeper.Stop(); err != nil && !errors.Is(err, lease.ErrNotStarted) {
			errs = append(errs, fmt.Errorf("failed to stop lease keeper: %w", err))
		}
	}

	s.cancel()

	if arbiter != nil && !s.readOnly {
		if err := arbiter.Release(s.identity); err != nil {
			errs = append(errs, fmt.Errorf("failed to release lease: %w", err))
		}
	}

	s.logger.Info("session closed", "identity", s.identity)

	return errors.Join(errs...)
}

// guardMutable checks the preconditions shared by all mutations.
// Callers must hold the write lock.
func (s *Session) guardMutable(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.readOnly {
		return ErrReadOnlySession
	}

	return ctx.Err()
}

// mutate runs the shared mutation flow: edit a private copy, validate,
// stamp, persist, record history, fire hooks.
func (s *Session) mutate(ctx context.Context, operation string, fn func(*types.StateSnapshot) error) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordCommit(operation, time.Since(start).Seconds(), err == nil)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.guardMutable(ctx); err != nil {
		return err
	}

	draft := s.snap.Clone()
	if err = fn(draft); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	report, verr := validate.All(draft, types.DateOf(s.now()))
	if verr != nil {
		err = verr

		return err
	}
	s.metrics.RecordValidation(len(report.Violations()), len(report.Advisories()))
	if !report.OK() {
		s.logger.Warn("mutation rejected by validation",
			"operation", operation, "violations", len(report.Violations()))
		err = &validate.Error{Report: report}

		return err
	}

	fp, ferr := fingerprint.Of(draft)
	if ferr == nil && fp == s.lastSaved {
		s.logger.Debug("mutation changed nothing, skipping persist", "operation", operation)

		return nil
	}

	draft.Meta.ModifiedAt = s.now()
	draft.Meta.ModifiedBy = s.identity

	if err = s.store.Save(ctx, draft); err != nil {
		return fmt.Errorf("failed to persist %s: %w", operation, err)
	}

	s.snap = draft
	s.history.Record(draft)
	if ferr == nil {
		s.lastSaved = fp
	}

	s.logger.Debug("mutation committed", "operation", operation)
	s.fireCommitted(operation, draft)

	return nil
}

// restore is the shared undo/redo flow.
func (s *Session) restore(ctx context.Context, operation string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordCommit(operation, time.Since(start).Seconds(), err == nil)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err = s.guardMutable(ctx); err != nil {
		return err
	}

	var restored *types.StateSnapshot
	if operation == "undo" {
		restored, err = s.history.Undo()
	} else {
		restored, err = s.history.Redo()
	}
	if err != nil {
		return err
	}

	restored.Meta.ModifiedAt = s.now()
	restored.Meta.ModifiedBy = s.identity

	if serr := s.store.Save(ctx, restored); serr != nil {
		// Rewind the stacks so the in-memory state stays what callers saw.
		var rerr error
		if operation == "undo" {
			_, rerr = s.history.Redo()
		} else {
			_, rerr = s.history.Undo()
		}
		if rerr != nil {
			s.logger.Error("failed to rewind history after persist failure",
				"operation", operation, "error", rerr)
		}
		err = fmt.Errorf("failed to persist %s: %w", operation, serr)

		return err
	}

	s.snap = restored
	if fp, ferr := fingerprint.Of(restored); ferr == nil {
		s.lastSaved = fp
	}

	s.logger.Info("history restored", "operation", operation)
	s.fireHistoryRestored(operation)

	return nil
}

// fireCommitted triggers the commit hook in the background.
func (s *Session) fireCommitted(operation string, snap *types.StateSnapshot) {
	if s.hooks.OnSnapshotCommitted == nil {
		return
	}

	copied := snap.Clone()
	go func() {
		if err := s.hooks.OnSnapshotCommitted(s.ctx, operation, copied); err != nil {
			s.logger.Error("commit hook error", "operation", operation, "error", err)
		}
	}()
}

// fireHistoryRestored triggers the history hook in the background.
func (s *Session) fireHistoryRestored(operation string) {
	if s.hooks.OnHistoryRestored == nil {
		return
	}

	go func() {
		if err := s.hooks.OnHistoryRestored(s.ctx, operation); err != nil {
			s.logger.Error("history hook error", "operation", operation, "error", err)
		}
	}()
}

// fireLeaseReclaimed triggers the reclaim hook in the background.
func (s *Session) fireLeaseReclaimed(previous types.LeaseInfo) {
	if s.hooks.OnLeaseReclaimed == nil {
		return
	}

	go func() {
		if err := s.hooks.OnLeaseReclaimed(s.ctx, previous); err != nil {
			s.logger.Error("lease reclaim hook error", "error", err)
		}
	}()
}
