package sitzplatz

import "time"

// Option configures a Session with optional dependencies.
type Option func(*sessionOptions)

// sessionOptions holds optional Session configuration.
type sessionOptions struct {
	hooks     *Hooks
	metrics   MetricsCollector
	logger    Logger
	clock     func() time.Time
	leasePath string
}

// WithHooks sets lifecycle event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for Open
//
// Example:
//
//	hooks := &sitzplatz.Hooks{
//	    OnSnapshotCommitted: func(ctx context.Context, operation string, snap *sitzplatz.StateSnapshot) error {
//	        return notifyTeam(operation, snap)
//	    },
//	}
//	session, err := sitzplatz.Open(ctx, &cfg, st, identity, sitzplatz.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *sessionOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for Open
//
// Example:
//
//	collector := metrics.NewPrometheus(registry, "sitzplatz")
//	session, err := sitzplatz.Open(ctx, &cfg, st, identity, sitzplatz.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *sessionOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with slog via logging.NewSlog)
//
// Returns:
//   - Option: Functional option for Open
//
// Example:
//
//	logger := logging.NewSlogDefault()
//	session, err := sitzplatz.Open(ctx, &cfg, st, identity, sitzplatz.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// WithClock sets the time source used for lease staleness, meta stamps
// and validity checks. Tests inject deterministic clocks this way.
//
// Parameters:
//   - now: Replacement for time.Now
//
// Returns:
//   - Option: Functional option for Open
func WithClock(now func() time.Time) Option {
	return func(o *sessionOptions) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithLeasePath overrides where the exclusivity lease file lives.
//
// By default the lease sits beside the snapshot document: stores
// exposing a LockPath() method report the location themselves. Stores
// without a natural file location (or deployments that keep the lease
// on a different share) set it explicitly.
//
// Parameters:
//   - path: Lease file location
//
// Returns:
//   - Option: Functional option for Open
func WithLeasePath(path string) Option {
	return func(o *sessionOptions) {
		o.leasePath = path
	}
}
