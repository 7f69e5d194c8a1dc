package sitzplatz

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	require.Equal(t, time.Hour, cfg.Lease.Timeout)
	require.Equal(t, 5*time.Minute, cfg.Lease.RefreshInterval)
	require.Equal(t, "data.lock", cfg.Lease.FileName)
	require.Equal(t, 50, cfg.History.MaxDepth)
	require.Equal(t, "data.json", cfg.Store.DataFileName)
	require.Equal(t, 5*time.Minute, cfg.Store.BackupInterval)
	require.Equal(t, 10, cfg.Store.MaxBackups)
	require.Equal(t, 30*time.Second, cfg.Engine.ValidationCacheTTL)

	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults to empty config", func(t *testing.T) {
		t.Parallel()

		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, time.Hour, cfg.Lease.Timeout)
		require.Equal(t, 5*time.Minute, cfg.Lease.RefreshInterval)
		require.Equal(t, 50, cfg.History.MaxDepth)
		require.Equal(t, 10, cfg.Store.MaxBackups)
		require.NoError(t, cfg.Validate())
	})

	t.Run("preserves custom values", func(t *testing.T) {
		t.Parallel()

		cfg := Config{
			Lease: LeaseConfig{
				Timeout:         30 * time.Minute,
				RefreshInterval: time.Minute,
				FileName:        "plan.lock",
			},
			History: HistoryConfig{MaxDepth: 100},
			Store: StoreConfig{
				DataFileName:   "plan.json",
				BackupInterval: time.Minute,
				MaxBackups:     3,
			},
			Engine: EngineConfig{ValidationCacheTTL: time.Second},
		}
		SetDefaults(&cfg)

		require.Equal(t, 30*time.Minute, cfg.Lease.Timeout)
		require.Equal(t, time.Minute, cfg.Lease.RefreshInterval)
		require.Equal(t, "plan.lock", cfg.Lease.FileName)
		require.Equal(t, 100, cfg.History.MaxDepth)
		require.Equal(t, "plan.json", cfg.Store.DataFileName)
		require.Equal(t, time.Minute, cfg.Store.BackupInterval)
		require.Equal(t, 3, cfg.Store.MaxBackups)
		require.Equal(t, time.Second, cfg.Engine.ValidationCacheTTL)
	})

	t.Run("negative backup settings pass through", func(t *testing.T) {
		t.Parallel()

		cfg := Config{
			Store: StoreConfig{BackupInterval: -1, MaxBackups: -1},
		}
		SetDefaults(&cfg)

		require.Equal(t, time.Duration(-1), cfg.Store.BackupInterval)
		require.Equal(t, -1, cfg.Store.MaxBackups)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "zero lease timeout",
			mutate:  func(cfg *Config) { cfg.Lease.Timeout = 0 },
			wantErr: "Lease.Timeout",
		},
		{
			name:    "zero refresh interval",
			mutate:  func(cfg *Config) { cfg.Lease.RefreshInterval = 0 },
			wantErr: "Lease.RefreshInterval",
		},
		{
			name: "refresh too close to timeout",
			mutate: func(cfg *Config) {
				cfg.Lease.Timeout = time.Minute
				cfg.Lease.RefreshInterval = 40 * time.Second
			},
			wantErr: "must be < Lease.Timeout/2",
		},
		{
			name:    "zero history depth",
			mutate:  func(cfg *Config) { cfg.History.MaxDepth = 0 },
			wantErr: "History.MaxDepth",
		},
		{
			name:    "negative validation cache TTL",
			mutate:  func(cfg *Config) { cfg.Engine.ValidationCacheTTL = -time.Second },
			wantErr: "ValidationCacheTTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestTestConfig(t *testing.T) {
	t.Parallel()

	cfg := TestConfig()

	require.Equal(t, 2*time.Second, cfg.Lease.Timeout)
	require.Equal(t, 500*time.Millisecond, cfg.Lease.RefreshInterval)
	require.Equal(t, 8, cfg.History.MaxDepth)
	require.NoError(t, cfg.Validate())
}

// TestConfigYAML demonstrates that time.Duration works directly with
// YAML unmarshaling.
func TestConfigYAML(t *testing.T) {
	t.Parallel()

	yamlConfig := `
lease:
  timeout: 30m
  refreshInterval: 2m
  fileName: plan.lock
history:
  maxDepth: 25
store:
  dataFileName: plan.json
  backupInterval: 10m
  maxBackups: 5
engine:
  validationCacheTtl: 1m
`

	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(yamlConfig), &cfg))

	require.Equal(t, 30*time.Minute, cfg.Lease.Timeout)
	require.Equal(t, 2*time.Minute, cfg.Lease.RefreshInterval)
	require.Equal(t, "plan.lock", cfg.Lease.FileName)
	require.Equal(t, 25, cfg.History.MaxDepth)
	require.Equal(t, "plan.json", cfg.Store.DataFileName)
	require.Equal(t, 10*time.Minute, cfg.Store.BackupInterval)
	require.Equal(t, 5, cfg.Store.MaxBackups)
	require.Equal(t, time.Minute, cfg.Engine.ValidationCacheTTL)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("partial file gets defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sitzplatz.yaml")
		require.NoError(t, os.WriteFile(path, []byte("lease:\n  timeout: 30m\n"), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, 30*time.Minute, cfg.Lease.Timeout)
		require.Equal(t, 5*time.Minute, cfg.Lease.RefreshInterval)
		require.Equal(t, 50, cfg.History.MaxDepth)
	})

	t.Run("missing file errors", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("lease: [\n"), 0o644))

		_, err := LoadConfig(path)
		require.ErrorContains(t, err, "failed to parse")
	})

	t.Run("invalid values error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("history:\n  maxDepth: -2\n"), 0o644))

		_, err := LoadConfig(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}
