package lease

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Common errors for keeper lifecycle operations.
var (
	ErrNotStarted     = errors.New("keeper not started")
	ErrAlreadyStarted = errors.New("keeper already started")
)

// DefaultRefreshInterval is the keeper's refresh cadence when none is
// configured. Well below the default staleness timeout, so a healthy
// session is never mistaken for an abandoned one.
const DefaultRefreshInterval = 5 * time.Minute

// Keeper refreshes a held lease in the background.
//
// Long sessions outlive the staleness timeout; without refreshing, a
// second process would eventually reclaim the lease out from under a
// healthy holder. The keeper rewrites the claim's timestamp at a fixed
// interval until stopped.
type Keeper struct {
	arbiter  *Arbiter
	identity string
	interval time.Duration

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	ticker  *time.Ticker
}

// NewKeeper creates a keeper refreshing the given identity's lease.
//
// The keeper reuses the arbiter's logger and metrics sink.
//
// Parameters:
//   - arbiter: Arbiter holding the lease
//   - identity: Identity that acquired the lease
//   - interval: Refresh cadence; non-positive means
//     DefaultRefreshInterval
//
// Returns:
//   - *Keeper: New keeper, not yet started
//
// Example:
//
//	keeper := lease.NewKeeper(arb, "alice@pc-01", 5*time.Minute)
//	if err := keeper.Start(ctx); err != nil {
//	    return err
//	}
//	defer keeper.Stop()
func NewKeeper(arbiter *Arbiter, identity string, interval time.Duration) *Keeper {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	return &Keeper{
		arbiter:  arbiter,
		identity: identity,
		interval: interval,
	}
}

// Start refreshes the lease once and begins the background cadence.
//
// The immediate refresh doubles as an ownership check: starting a
// keeper for a lease the identity does not hold fails outright.
//
// Parameters:
//   - ctx: Stops the background refreshing when done, like Stop
//
// Returns:
//   - error: ErrAlreadyStarted when running, or the initial refresh
//     failure (types.ErrLeaseNotHeld for a foreign lease)
func (k *Keeper) Start(ctx context.Context) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.started {
		return ErrAlreadyStarted
	}

	if err := k.arbiter.Refresh(k.identity); err != nil {
		return fmt.Errorf("failed to refresh lease on start: %w", err)
	}
	k.arbiter.metrics.RecordLeaseRefresh(true)

	k.started = true
	k.stopCh = make(chan struct{})
	k.doneCh = make(chan struct{})
	k.ticker = time.NewTicker(k.interval)

	go k.run(ctx, k.stopCh, k.doneCh, k.ticker)

	return nil
}

// Stop halts refreshing and waits for the background goroutine to
// exit. The lease itself stays held; releasing is the caller's call.
//
// Returns:
//   - error: ErrNotStarted when the keeper is not running
func (k *Keeper) Stop() error {
	k.mu.Lock()

	if !k.started {
		k.mu.Unlock()

		return ErrNotStarted
	}

	k.ticker.Stop()
	close(k.stopCh)
	k.started = false
	doneCh := k.doneCh

	k.mu.Unlock()

	<-doneCh

	return nil
}

// Running reports whether the background refresher is active.
func (k *Keeper) Running() bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.started
}

// run is the background refresh loop.
func (k *Keeper) run(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}, ticker *time.Ticker) {
	defer close(doneCh)

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			k.arbiter.logger.Debug("lease keeper context ended", "identity", k.identity)
			k.mu.Lock()
			if k.started {
				k.ticker.Stop()
				k.started = false
			}
			k.mu.Unlock()

			return
		case <-ticker.C:
			if err := k.arbiter.Refresh(k.identity); err != nil {
				// Keep trying: transient filesystem errors must not
				// silently end refreshing while the session still
				// believes it holds the lease.
				k.arbiter.logger.Warn("lease refresh failed",
					"identity", k.identity, "error", err)
				k.arbiter.metrics.RecordLeaseRefresh(false)

				continue
			}
			k.arbiter.metrics.RecordLeaseRefresh(true)
		}
	}
}
