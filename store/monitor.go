package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/humphreyyy/sitzplatz/internal/logger"
	"github.com/humphreyyy/sitzplatz/internal/metrics"
	"github.com/humphreyyy/sitzplatz/types"
)

// Monitor lifecycle errors.
var (
	// ErrMonitorNotStarted is returned by Stop when the monitor is not running.
	ErrMonitorNotStarted = errors.New("monitor not started")
	// ErrMonitorAlreadyStarted is returned by Start when the monitor is running.
	ErrMonitorAlreadyStarted = errors.New("monitor already started")
)

// DefaultDebounce is how long the monitor coalesces filesystem events
// before notifying subscribers. Editors and atomic renames produce
// several events per logical change; one notification is enough.
const DefaultDebounce = 100 * time.Millisecond

// EventKind classifies what changed in the store directory.
type EventKind int

const (
	// EventSnapshotChanged signals the data file was written or replaced.
	EventSnapshotChanged EventKind = iota
	// EventLeaseChanged signals the lease file was created or rewritten.
	EventLeaseChanged
	// EventLeaseRemoved signals the lease file was deleted.
	EventLeaseRemoved
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventSnapshotChanged:
		return "snapshot"
	case EventLeaseChanged:
		return "lease"
	case EventLeaseRemoved:
		return "lease_removed"
	default:
		return "unknown"
	}
}

// Event describes one observed change in the store directory.
type Event struct {
	Kind EventKind
	Path string
	At   time.Time
}

// Monitor watches a store directory and fans out change events to
// subscribers. Read-only sessions use it to reload the snapshot when
// the lease holder commits, and to notice the lease itself appearing
// or disappearing.
type Monitor struct {
	dir      string
	dataName string
	lockName string
	debounce time.Duration

	logger  types.Logger
	metrics types.StoreMetrics

	subscribers *xsync.Map[uint64, *subscriber]
	nextID      atomic.Uint64

	mu      sync.Mutex
	started bool
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithDebounce sets the event coalescing window. Non-positive keeps
// the default.
//
// Parameters:
//   - d: Coalescing window
//
// Returns:
//   - MonitorOption: Configuration option
func WithDebounce(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.debounce = d
		}
	}
}

// WithWatchedNames overrides the file names the monitor reacts to.
// Empty values keep the defaults.
//
// Parameters:
//   - dataName: Snapshot document name
//   - lockName: Lease file name
//
// Returns:
//   - MonitorOption: Configuration option
func WithWatchedNames(dataName, lockName string) MonitorOption {
	return func(m *Monitor) {
		if dataName != "" {
			m.dataName = dataName
		}
		if lockName != "" {
			m.lockName = lockName
		}
	}
}

// WithMonitorLogger sets the logger for watch events.
//
// Parameters:
//   - log: Logger implementation
//
// Returns:
//   - MonitorOption: Configuration option
func WithMonitorLogger(log types.Logger) MonitorOption {
	return func(m *Monitor) {
		if log != nil {
			m.logger = log
		}
	}
}

// WithMonitorMetrics sets the metrics sink for watch events.
//
// Parameters:
//   - collector: Metrics implementation
//
// Returns:
//   - MonitorOption: Configuration option
func WithMonitorMetrics(collector types.StoreMetrics) MonitorOption {
	return func(m *Monitor) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

// NewMonitor creates a monitor for the store directory.
//
// Parameters:
//   - dir: Directory holding the data and lease files
//   - opts: Optional configuration
//
// Returns:
//   - *Monitor: Initialized monitor; call Start to begin watching
//
// Example:
//
//	mon := store.NewMonitor(st.Dir())
//	if err := mon.Start(ctx); err != nil {
//	    return err
//	}
//	defer mon.Stop()
//
//	ch, unsubscribe := mon.Subscribe()
//	defer unsubscribe()
//	for ev := range ch {
//	    fmt.Println("changed:", ev.Kind)
//	}
func NewMonitor(dir string, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		dir:         dir,
		dataName:    DefaultDataFileName,
		lockName:    DefaultLockFileName,
		debounce:    DefaultDebounce,
		logger:      logger.NewNop(),
		metrics:     metrics.NewNop(),
		subscribers: xsync.NewMap[uint64, *subscriber](),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start begins watching the store directory.
//
// Parameters:
//   - ctx: Cancels the watch loop when done
//
// Returns:
//   - error: ErrMonitorAlreadyStarted, or watcher setup failure
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrMonitorAlreadyStarted
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(m.dir); err != nil {
		watcher.Close()

		return fmt.Errorf("failed to watch %s: %w", m.dir, err)
	}

	m.watcher = watcher
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	m.started = true

	m.logger.Debug("store monitor started", "dir", m.dir)

	go m.run(ctx, watcher, m.stopCh, m.doneCh)

	return nil
}

// Stop ends the watch loop and closes all subscriber channels.
//
// Returns:
//   - error: ErrMonitorNotStarted when the monitor is not running
func (m *Monitor) Stop() error {
	m.mu.Lock()

	if !m.started {
		m.mu.Unlock()

		return ErrMonitorNotStarted
	}

	m.started = false
	m.watcher.Close()
	close(m.stopCh)
	doneCh := m.doneCh
	m.mu.Unlock()

	<-doneCh

	m.logger.Debug("store monitor stopped", "dir", m.dir)

	return nil
}

// Running reports whether the watch loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.started
}

// Subscribe returns a channel receiving store change events.
//
// The channel is buffered (size 8) and slow subscribers drop events
// rather than stall the watch loop; a dropped event is harmless
// because the next reload reads the full document anyway.
//
// Returns:
//   - <-chan Event: Channel receiving change events
//   - func(): Unsubscribe function releasing the channel
func (m *Monitor) Subscribe() (<-chan Event, func()) {
	id := m.nextID.Add(1)

	sub := &subscriber{ch: make(chan Event, 8)}
	m.subscribers.Store(id, sub)

	unsubscribe := func() {
		if sub, ok := m.subscribers.LoadAndDelete(id); ok {
			sub.close()
		}
	}

	return sub.ch, unsubscribe
}

// run is the watch loop. It coalesces raw filesystem events within the
// debounce window, then emits at most one event per kind.
func (m *Monitor) run(ctx context.Context, watcher *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	defer m.closeSubscribers()

	pending := make(map[EventKind]Event)
	var flush <-chan time.Time

	for {
		select {
		case <-stopCh:
			return

		case <-ctx.Done():
			m.logger.Debug("store monitor context canceled", "dir", m.dir)
			watcher.Close()
			m.mu.Lock()
			if m.stopCh == stopCh {
				m.started = false
			}
			m.mu.Unlock()

			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			kind, matched := m.classify(ev)
			if !matched {
				continue
			}
			pending[kind] = Event{Kind: kind, Path: ev.Name, At: time.Now()}
			if flush == nil {
				flush = time.After(m.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("watcher error", "dir", m.dir, "error", err)

		case <-flush:
			flush = nil
			m.emit(pending)
			pending = make(map[EventKind]Event)
		}
	}
}

// classify maps a raw filesystem event onto a store event kind.
// Temp files from atomic writes never match because their names do.
func (m *Monitor) classify(ev fsnotify.Event) (EventKind, bool) {
	switch filepath.Base(ev.Name) {
	case m.dataName:
		if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Rename) {
			return EventSnapshotChanged, true
		}
	case m.lockName:
		if ev.Op.Has(fsnotify.Remove) {
			return EventLeaseRemoved, true
		}
		if ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Rename) {
			return EventLeaseChanged, true
		}
	}

	return 0, false
}

// emit fans the coalesced events out to every subscriber, in a fixed
// kind order so consumers see snapshot changes before lease changes.
func (m *Monitor) emit(pending map[EventKind]Event) {
	for _, kind := range []EventKind{EventSnapshotChanged, EventLeaseChanged, EventLeaseRemoved} {
		ev, ok := pending[kind]
		if !ok {
			continue
		}

		m.logger.Debug("store change observed", "kind", kind.String(), "path", ev.Path)
		m.metrics.RecordWatchEvent(kind.String())

		m.subscribers.Range(func(_ uint64, sub *subscriber) bool {
			sub.trySend(ev, m.metrics)

			return true
		})
	}
}

// closeSubscribers closes every subscriber channel so range loops end.
func (m *Monitor) closeSubscribers() {
	m.subscribers.Range(func(id uint64, sub *subscriber) bool {
		if sub, ok := m.subscribers.LoadAndDelete(id); ok {
			sub.close()
		}

		return true
	})
}

// subscriber is a helper for managing change event subscriptions.
type subscriber struct {
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

// trySend delivers an event without blocking the watch loop.
func (s *subscriber) trySend(ev Event, collector types.StoreMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- ev:
	default:
		// Subscriber is slow; the next reload covers the change.
		collector.RecordWatchEventDropped()
	}
}

// close safely closes the subscriber's channel.
func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
