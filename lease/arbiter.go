package lease

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/humphreyyy/sitzplatz/internal/logger"
	"github.com/humphreyyy/sitzplatz/internal/metrics"
	"github.com/humphreyyy/sitzplatz/types"
)

// DefaultTimeout is the staleness threshold: a lease unrefreshed for
// longer than this is considered abandoned and may be reclaimed.
const DefaultTimeout = time.Hour

// Grant is the receipt of a successful acquisition.
type Grant struct {
	// Identity is the holder recorded in the lease file.
	Identity string

	// Token is the random nonce of this grant, distinguishing it from
	// earlier grants by the same identity.
	Token string

	// AcquiredAt is when the lease was written.
	AcquiredAt time.Time

	// Reclaimed reports that the acquisition displaced an abandoned
	// claim instead of creating a fresh one.
	Reclaimed bool

	// ReclaimedFrom describes the displaced holder. Nil for a fresh
	// grant, and nil for a reclaim whose old claim was unreadable.
	ReclaimedFrom *types.LeaseInfo
}

// Arbiter arbitrates exclusive access through a single lease file.
//
// All methods are safe for concurrent use within a process; the
// cross-process race is settled by the filesystem's atomic create and
// rename, not by the in-process mutex.
type Arbiter struct {
	path    string
	timeout time.Duration
	now     func() time.Time

	logger  types.Logger
	metrics types.LeaseMetrics

	mu sync.Mutex
}

// Option configures an Arbiter.
type Option func(*Arbiter)

// WithTimeout sets the staleness threshold. Non-positive values keep
// the default of one hour.
//
// Parameters:
//   - timeout: Maximum age before a lease may be reclaimed
//
// Returns:
//   - Option: Configuration option
func WithTimeout(timeout time.Duration) Option {
	return func(a *Arbiter) {
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// WithClock sets the time source, letting tests age leases without
// sleeping.
//
// Parameters:
//   - now: Replacement for time.Now
//
// Returns:
//   - Option: Configuration option
func WithClock(now func() time.Time) Option {
	return func(a *Arbiter) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets the logger for arbitration events.
//
// Parameters:
//   - log: Logger implementation
//
// Returns:
//   - Option: Configuration option
func WithLogger(log types.Logger) Option {
	return func(a *Arbiter) {
		if log != nil {
			a.logger = log
		}
	}
}

// WithMetrics sets the metrics sink for acquire and refresh outcomes.
//
// Parameters:
//   - collector: Metrics implementation
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector types.LeaseMetrics) Option {
	return func(a *Arbiter) {
		if collector != nil {
			a.metrics = collector
		}
	}
}

// New creates an arbiter over the given lease file path.
//
// The file does not need to exist; its parent directory does.
//
// Parameters:
//   - path: Location of the lease file on the shared filesystem
//   - opts: Optional configuration (WithTimeout, WithClock, WithLogger,
//     WithMetrics)
//
// Returns:
//   - *Arbiter: Initialized arbiter
//
// Example:
//
//	arb := lease.New(filepath.Join(dir, "data.lock"),
//	    lease.WithTimeout(time.Hour),
//	)
//	grant, err := arb.Acquire("alice@pc-01")
func New(path string, opts ...Option) *Arbiter {
	a := &Arbiter{
		path:    path,
		timeout: DefaultTimeout,
		now:     time.Now,
		logger:  logger.NewNop(),
		metrics: metrics.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Path returns the lease file location.
func (a *Arbiter) Path() string {
	return a.path
}

// Timeout returns the staleness threshold.
func (a *Arbiter) Timeout() time.Duration {
	return a.timeout
}

// Acquire claims the lease for the given identity.
//
// An absent lease is claimed with an atomic create. An existing claim
// younger than the timeout wins: the caller is denied and must fall
// back to read-only use. Claims older than the timeout, and claims
// whose file cannot be parsed, are treated as abandoned and replaced
// atomically; the grant then carries the displaced holder so callers
// can warn about the takeover.
//
// Parameters:
//   - identity: Holder identity to record, e.g. "alice@pc-01"
//
// Returns:
//   - *Grant: Receipt of the new claim
//   - error: *types.AccessDeniedError (matches types.ErrAccessDenied)
//     when a fresh holder exists, types.ErrIdentityRequired for an
//     empty identity, or an I/O error
func (a *Arbiter) Acquire(identity string) (*Grant, error) {
	if identity == "" {
		return nil, types.ErrIdentityRequired
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	info := a.newLease(identity)
	payload, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode lease: %w", err)
	}

	created, err := a.tryCreate(payload)
	if err != nil {
		return nil, err
	}
	if created {
		a.logger.Info("lease acquired", "identity", identity, "path", a.path)
		a.metrics.RecordLeaseAcquire("created")

		return &Grant{Identity: identity, Token: info.Token, AcquiredAt: info.AcquiredAt}, nil
	}

	existing, readErr := a.read()
	switch {
	case readErr == nil:
		age := existing.Age(a.now())
		if age <= a.timeout {
			a.metrics.RecordLeaseAcquire("denied")

			return nil, &types.AccessDeniedError{Holder: existing, Age: age}
		}
		if err := a.writeAtomic(payload); err != nil {
			return nil, err
		}
		a.logger.Warn("reclaimed stale lease",
			"identity", identity, "previous_holder", existing.Identity, "age", age)
		a.metrics.RecordLeaseAcquire("reclaimed")

		return &Grant{
			Identity:      identity,
			Token:         info.Token,
			AcquiredAt:    info.AcquiredAt,
			Reclaimed:     true,
			ReclaimedFrom: &existing,
		}, nil

	case errors.Is(readErr, fs.ErrNotExist):
		// Freed between the create attempt and the read. The atomic
		// replace settles any remaining race in favor of one writer.
		if err := a.writeAtomic(payload); err != nil {
			return nil, err
		}
		a.metrics.RecordLeaseAcquire("created")

		return &Grant{Identity: identity, Token: info.Token, AcquiredAt: info.AcquiredAt}, nil

	case errors.Is(readErr, types.ErrLeaseCorrupt):
		if err := a.writeAtomic(payload); err != nil {
			return nil, err
		}
		a.logger.Warn("reclaimed unreadable lease", "identity", identity, "error", readErr)
		a.metrics.RecordLeaseAcquire("reclaimed")

		return &Grant{Identity: identity, Token: info.Token, AcquiredAt: info.AcquiredAt, Reclaimed: true}, nil

	default:
		return nil, readErr
	}
}

// Release gives up the lease held by the given identity.
//
// The file is deleted only when its recorded identity matches, so a
// superseded holder releasing after a reclaim leaves the new claim
// intact. Releasing an absent, unreadable or other-held lease is a
// no-op.
//
// Parameters:
//   - identity: Identity that acquired the lease
//
// Returns:
//   - error: I/O error deleting the file; never a mismatch
func (a *Arbiter) Release(identity string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing, err := a.read()
	if err != nil {
		// Absent means nothing to release; unreadable is left for the
		// next Acquire to reclaim.
		return nil
	}
	if existing.Identity != identity {
		a.logger.Debug("release skipped, lease held elsewhere",
			"identity", identity, "holder", existing.Identity)

		return nil
	}

	if err := os.Remove(a.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove lease: %w", err)
	}
	a.logger.Info("lease released", "identity", identity)

	return nil
}

// Refresh extends the claim by rewriting its timestamp.
//
// Parameters:
//   - identity: Identity that acquired the lease
//
// Returns:
//   - error: types.ErrLeaseNotHeld when the lease is absent or held by
//     another identity, or an I/O error
func (a *Arbiter) Refresh(identity string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing, err := a.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.ErrLeaseNotHeld
		}

		return err
	}
	if existing.Identity != identity {
		return fmt.Errorf("%w: held by %q", types.ErrLeaseNotHeld, existing.Identity)
	}

	a.metrics.RecordLeaseAge(existing.Age(a.now()).Seconds())

	existing.AcquiredAt = a.now()
	payload, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode lease: %w", err)
	}

	return a.writeAtomic(payload)
}

// Holder reports the current claim, fresh or stale.
//
// Returns:
//   - types.LeaseInfo: The recorded holder when held
//   - bool: true when a parseable lease file exists; staleness is the
//     caller's call via LeaseInfo.Age
//   - error: Wrapped types.ErrLeaseCorrupt for an unreadable file, or
//     an I/O error
func (a *Arbiter) Holder() (types.LeaseInfo, bool, error) {
	info, err := a.read()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.LeaseInfo{}, false, nil
		}

		return types.LeaseInfo{}, false, err
	}

	return info, true, nil
}

// WaitAcquire retries Acquire until it succeeds, fails for a reason
// other than denial, or the context ends.
//
// Parameters:
//   - ctx: Bounds the wait
//   - identity: Holder identity to record
//   - poll: Interval between attempts; non-positive means one second
//
// Returns:
//   - *Grant: Receipt of the claim
//   - error: The context error joined with the last denial, or a
//     non-denial acquisition error
func (a *Arbiter) WaitAcquire(ctx context.Context, identity string, poll time.Duration) (*Grant, error) {
	if poll <= 0 {
		poll = time.Second
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		grant, err := a.Acquire(identity)
		if err == nil {
			return grant, nil
		}
		if !errors.Is(err, types.ErrAccessDenied) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ctx.Err(), err)
		case <-ticker.C:
		}
	}
}

// newLease builds the claim payload for this process.
func (a *Arbiter) newLease(identity string) types.LeaseInfo {
	host, _ := os.Hostname()

	return types.LeaseInfo{
		Identity:   identity,
		Token:      uuid.NewString(),
		PID:        os.Getpid(),
		Host:       host,
		AcquiredAt: a.now(),
	}
}

// tryCreate claims an absent lease file atomically. Reports false
// without error when the file already exists.
func (a *Arbiter) tryCreate(payload []byte) (bool, error) {
	f, err := os.OpenFile(a.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}

		return false, fmt.Errorf("failed to create lease: %w", err)
	}

	if _, err := f.Write(payload); err != nil {
		f.Close()
		os.Remove(a.path)

		return false, fmt.Errorf("failed to write lease: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(a.path)

		return false, fmt.Errorf("failed to write lease: %w", err)
	}

	return true, nil
}

// writeAtomic replaces the lease file content through a temp file and
// rename, so racing readers observe either the old claim or the new
// one, never a partial write.
func (a *Arbiter) writeAtomic(payload []byte) error {
	dir := filepath.Dir(a.path)
	tmp, err := os.CreateTemp(dir, ".lease-*")
	if err != nil {
		return fmt.Errorf("failed to stage lease: %w", err)
	}

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to stage lease: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to stage lease: %w", err)
	}

	if err := os.Rename(tmp.Name(), a.path); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to replace lease: %w", err)
	}

	return nil
}

// read loads and parses the lease file.
func (a *Arbiter) read() (types.LeaseInfo, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return types.LeaseInfo{}, err
	}

	var info types.LeaseInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return types.LeaseInfo{}, fmt.Errorf("%w: %v", types.ErrLeaseCorrupt, err)
	}

	return info, nil
}
