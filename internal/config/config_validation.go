package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The structured config is a superset shared by both binaries, so only
// cross-cutting invariants live here; binary-specific checks belong to the
// derived views ([SyncdConfig.validate] and cmd/server startup).
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *SyncdConfig) validate() error {
	if cfg.Adapter.BaseURL == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Adapter.Token == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Bridge.HubAddress == "" {
		return ErrInvalidBridgeConfigs
	}

	return nil
}
