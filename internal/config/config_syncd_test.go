package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSyncdConfig() *SyncdConfig {
	return &SyncdConfig{
		Bridge: SyncdBridge{
			HubAddress: "localhost:8765",
		},
		Adapter: SyncdAdapter{
			BaseURL: "http://localhost:8080",
			Token:   "test-token",
		},
	}
}

func TestSyncdConfig_ApplyDefaults(t *testing.T) {
	t.Run("fills unset tunables", func(t *testing.T) {
		cfg := &SyncdConfig{}
		cfg.applyDefaults()

		assert.Equal(t, DefaultHubAddress, cfg.Bridge.HubAddress)
		assert.Equal(t, DefaultProbeTimeout, cfg.Bridge.ProbeTimeout)
		assert.Equal(t, DefaultRequestTimeout, cfg.Bridge.RequestTimeout)
		assert.Equal(t, DefaultWarmupDelay, cfg.Bridge.WarmupDelay)
		assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
		assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)
		assert.Equal(t, DefaultSyncTimeout, cfg.Workers.SyncTimeout)
		assert.Equal(t, DefaultEventDebounce, cfg.Workers.EventDebounce)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := &SyncdConfig{
			Bridge: SyncdBridge{
				HubAddress:   "bridge:9999",
				ProbeTimeout: 250 * time.Millisecond,
			},
			Workers: SyncdWorkers{
				SyncInterval: time.Hour,
			},
		}
		cfg.applyDefaults()

		assert.Equal(t, "bridge:9999", cfg.Bridge.HubAddress)
		assert.Equal(t, 250*time.Millisecond, cfg.Bridge.ProbeTimeout)
		assert.Equal(t, time.Hour, cfg.Workers.SyncInterval)
		// Untouched fields still pick up defaults.
		assert.Equal(t, DefaultSyncTimeout, cfg.Workers.SyncTimeout)
	})
}

func TestSyncdConfig_Validate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, validSyncdConfig().validate())
	})

	t.Run("missing base url", func(t *testing.T) {
		cfg := validSyncdConfig()
		cfg.Adapter.BaseURL = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)
	})

	t.Run("missing token", func(t *testing.T) {
		cfg := validSyncdConfig()
		cfg.Adapter.Token = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAdapterConfigs)
	})

	t.Run("missing hub address", func(t *testing.T) {
		cfg := validSyncdConfig()
		cfg.Bridge.HubAddress = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidBridgeConfigs)
	})
}
