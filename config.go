package sitzplatz

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LeaseConfig controls exclusive-access arbitration.
type LeaseConfig struct {
	// Timeout is how long an unrefreshed lease stays authoritative.
	// A holder that has not refreshed within Timeout is considered
	// gone (crashed, suspended laptop, unplugged network share) and
	// the next Acquire takes the lease over.
	//
	// Default: 1 hour
	// Constraint: Must be > 0
	Timeout time.Duration `yaml:"timeout"`

	// RefreshInterval is how often the session re-stamps its own lease
	// while open. Must leave several refresh opportunities within
	// Timeout so one missed refresh never loses the lease.
	//
	// Default: 5 minutes
	// Constraint: Must be > 0 and < Timeout/2
	RefreshInterval time.Duration `yaml:"refreshInterval"`

	// FileName is the lease file name inside the store directory.
	FileName string `yaml:"fileName"`
}

// HistoryConfig controls undo/redo bookkeeping.
type HistoryConfig struct {
	// MaxDepth is how many snapshot states the undo chain retains.
	// When full, the oldest state is evicted.
	//
	// Default: 50
	// Constraint: Must be >= 1
	MaxDepth int `yaml:"maxDepth"`
}

// StoreConfig controls file store layout and backup policy. The
// settings apply when the store is built by OpenDir; supplying a
// pre-built store bypasses them.
type StoreConfig struct {
	// DataFileName is the snapshot document name inside the store
	// directory.
	DataFileName string `yaml:"dataFileName"`

	// BackupInterval is the minimum spacing between two backups of the
	// document. Zero means the default; negative means a backup before
	// every save.
	//
	// Default: 5 minutes
	BackupInterval time.Duration `yaml:"backupInterval"`

	// MaxBackups bounds the backup directory. Zero means the default;
	// negative disables backups entirely.
	//
	// Default: 10
	MaxBackups int `yaml:"maxBackups"`
}

// EngineConfig controls planning and validation behavior.
type EngineConfig struct {
	// ValidationCacheTTL is how long a computed validation report stays
	// cached for an unchanged snapshot.
	//
	// Default: 30 seconds
	// Constraint: Must be > 0
	ValidationCacheTTL time.Duration `yaml:"validationCacheTtl"`
}

// Config is the configuration for a Session.
//
// All duration fields accept standard Go duration strings like "30s",
// "5m", "1h" when loaded from YAML.
type Config struct {
	// Lease controls exclusive-access arbitration.
	Lease LeaseConfig `yaml:"lease"`

	// History controls undo/redo bookkeeping.
	History HistoryConfig `yaml:"history"`

	// Store controls file store layout and backup policy.
	Store StoreConfig `yaml:"store"`

	// Engine controls planning and validation behavior.
	Engine EngineConfig `yaml:"engine"`
}

// DefaultConfig returns a Config with production defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Lease: LeaseConfig{
			Timeout:         time.Hour,
			RefreshInterval: 5 * time.Minute,
			FileName:        "data.lock",
		},
		History: HistoryConfig{
			MaxDepth: 50,
		},
		Store: StoreConfig{
			DataFileName:   "data.json",
			BackupInterval: 5 * time.Minute,
			MaxBackups:     10,
		},
		Engine: EngineConfig{
			ValidationCacheTTL: 30 * time.Second,
		},
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Zero values are treated as unset. Negative BackupInterval and
// MaxBackups are deliberate settings (every save, disabled) and pass
// through untouched.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Lease.Timeout == 0 {
		cfg.Lease.Timeout = defaults.Lease.Timeout
	}
	if cfg.Lease.RefreshInterval == 0 {
		cfg.Lease.RefreshInterval = defaults.Lease.RefreshInterval
	}
	if cfg.Lease.FileName == "" {
		cfg.Lease.FileName = defaults.Lease.FileName
	}
	if cfg.History.MaxDepth == 0 {
		cfg.History.MaxDepth = defaults.History.MaxDepth
	}
	if cfg.Store.DataFileName == "" {
		cfg.Store.DataFileName = defaults.Store.DataFileName
	}
	if cfg.Store.BackupInterval == 0 {
		cfg.Store.BackupInterval = defaults.Store.BackupInterval
	}
	if cfg.Store.MaxBackups == 0 {
		cfg.Store.MaxBackups = defaults.Store.MaxBackups
	}
	if cfg.Engine.ValidationCacheTTL == 0 {
		cfg.Engine.ValidationCacheTTL = defaults.Engine.ValidationCacheTTL
	}
}

// Validate checks configuration constraints and returns an error for
// invalid values.
//
// Hard Validation Rules:
//   - Lease.Timeout > 0 (staleness must be detectable)
//   - Lease.RefreshInterval > 0 and < Timeout/2 (refresh must outpace staleness)
//   - History.MaxDepth >= 1 (at least the live state)
//   - Engine.ValidationCacheTTL > 0 (reports must expire)
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.Lease.Timeout <= 0 {
		return fmt.Errorf("Lease.Timeout must be > 0, got %v", cfg.Lease.Timeout)
	}

	if cfg.Lease.RefreshInterval <= 0 {
		return fmt.Errorf("Lease.RefreshInterval must be > 0, got %v", cfg.Lease.RefreshInterval)
	}

	if cfg.Lease.RefreshInterval >= cfg.Lease.Timeout/2 {
		return fmt.Errorf(
			"Lease.RefreshInterval (%v) must be < Lease.Timeout/2 (%v) so a missed refresh never loses the lease",
			cfg.Lease.RefreshInterval, cfg.Lease.Timeout/2,
		)
	}

	if cfg.History.MaxDepth < 1 {
		return fmt.Errorf("History.MaxDepth must be >= 1, got %d", cfg.History.MaxDepth)
	}

	if cfg.Engine.ValidationCacheTTL <= 0 {
		return fmt.Errorf("Engine.ValidationCacheTTL must be > 0, got %v", cfg.Engine.ValidationCacheTTL)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for
// non-recommended values.
//
// This is called after Validate() in Open() to provide operator
// guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.Lease.RefreshInterval > cfg.Lease.Timeout/4 {
		logger.Warn(
			"Lease.RefreshInterval leaves few refresh opportunities before staleness",
			"refreshInterval", cfg.Lease.RefreshInterval,
			"timeout", cfg.Lease.Timeout,
			"recommended", cfg.Lease.Timeout/4,
		)
	}

	if cfg.History.MaxDepth > 500 {
		logger.Warn(
			"History.MaxDepth retains many full snapshot copies in memory",
			"maxDepth", cfg.History.MaxDepth,
			"recommended", "500 or lower",
		)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Test timings are 10-100x faster than production defaults to enable
// rapid iteration without sacrificing test coverage. Use DefaultConfig()
// for production deployments.
//
// Returns:
//   - Config: Configuration with fast timings for tests
//
// Example:
//
//	cfg := sitzplatz.TestConfig()
//	session, err := sitzplatz.OpenDir(ctx, dir, &cfg, "test@host")
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.Lease.Timeout = 2 * time.Second                    // 1800x faster
	cfg.Lease.RefreshInterval = 500 * time.Millisecond     // 600x faster
	cfg.History.MaxDepth = 8                               // small eviction window
	cfg.Store.BackupInterval = -1                          // back up every save
	cfg.Store.MaxBackups = 2                               // small pruning window
	cfg.Engine.ValidationCacheTTL = 100 * time.Millisecond // 300x faster

	return cfg
}

// LoadConfig reads a YAML configuration file, fills defaults and
// validates the result.
//
// Parameters:
//   - path: YAML file location
//
// Returns:
//   - Config: Loaded configuration, ready for Open
//   - error: Read, parse or validation failure
//
// Example:
//
//	cfg, err := sitzplatz.LoadConfig("sitzplatz.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}
