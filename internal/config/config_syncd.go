package config

import (
	"fmt"
	"time"
)

// Default tunables applied by [GetSyncdConfig] when no source sets a value.
// They match the weight classes of the operations they bound: the probe is a
// single lightweight ping, data requests may carry a full bookmark tree.
const (
	DefaultProbeTimeout   = 5 * time.Second
	DefaultRequestTimeout = 15 * time.Second
	DefaultWarmupDelay    = 1 * time.Second
	DefaultSyncInterval   = 5 * time.Minute
	DefaultSyncTimeout    = 60 * time.Second
	DefaultEventDebounce  = 2 * time.Second
	DefaultHubAddress     = "localhost:8765"
)

// SyncdBridge holds bridge settings used by the sync daemon.
type SyncdBridge struct {
	// HubAddress is the WebSocket hub listen address.
	HubAddress string
	// ProbeTimeout bounds the connectivity ping.
	ProbeTimeout time.Duration
	// RequestTimeout bounds data-carrying bridge requests.
	RequestTimeout time.Duration
	// WarmupDelay is the pause before a delivery retry after waking a peer.
	WarmupDelay time.Duration
}

// SyncdAdapter holds remote bookmark store settings used by the sync daemon.
type SyncdAdapter struct {
	// BaseURL is the bookmark store API root.
	BaseURL string
	// Token is the bearer token identifying the owning session.
	Token string
	// RequestTimeout is the outbound per-request deadline.
	RequestTimeout time.Duration
}

// SyncdStorage holds local persistence settings for the sync daemon.
type SyncdStorage struct {
	// FingerprintsPath is the SQLite file for stored snapshot fingerprints.
	FingerprintsPath string
}

// SyncdWorkers holds background sync job settings for the daemon.
type SyncdWorkers struct {
	// SyncInterval is the period between scheduled runs.
	SyncInterval time.Duration
	// SyncTimeout bounds one run up to the apply phase.
	SyncTimeout time.Duration
	// EventDebounce coalesces bursts of browser change events.
	EventDebounce time.Duration
}

// SyncdConfig is the top-level sync daemon configuration assembled from
// [StructuredConfig].
type SyncdConfig struct {
	// Bridge contains message bridge settings.
	Bridge SyncdBridge
	// Adapter contains remote store client settings.
	Adapter SyncdAdapter
	// Storage contains local persistence settings.
	Storage SyncdStorage
	// Workers contains background job settings.
	Workers SyncdWorkers
}

// GetSyncdConfig builds and validates a daemon-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the daemon runtime, applies defaults for unset tunables, and
// validates the resulting [SyncdConfig].
func GetSyncdConfig() (*SyncdConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	syncdCfg := &SyncdConfig{
		Bridge: SyncdBridge{
			HubAddress:     cfg.Bridge.HubAddress,
			ProbeTimeout:   cfg.Bridge.ProbeTimeout,
			RequestTimeout: cfg.Bridge.RequestTimeout,
			WarmupDelay:    cfg.Bridge.WarmupDelay,
		},
		Adapter: SyncdAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			Token:          cfg.Adapter.Token,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: SyncdStorage{
			FingerprintsPath: cfg.Storage.Fingerprints.Path,
		},
		Workers: SyncdWorkers{
			SyncInterval:  cfg.Workers.SyncInterval,
			SyncTimeout:   cfg.Workers.SyncTimeout,
			EventDebounce: cfg.Workers.EventDebounce,
		},
	}
	syncdCfg.applyDefaults()

	return syncdCfg, syncdCfg.validate()
}

func (cfg *SyncdConfig) applyDefaults() {
	if cfg.Bridge.HubAddress == "" {
		cfg.Bridge.HubAddress = DefaultHubAddress
	}
	if cfg.Bridge.ProbeTimeout <= 0 {
		cfg.Bridge.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Bridge.RequestTimeout <= 0 {
		cfg.Bridge.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Bridge.WarmupDelay <= 0 {
		cfg.Bridge.WarmupDelay = DefaultWarmupDelay
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.SyncTimeout <= 0 {
		cfg.Workers.SyncTimeout = DefaultSyncTimeout
	}
	if cfg.Workers.EventDebounce <= 0 {
		cfg.Workers.EventDebounce = DefaultEventDebounce
	}
}
