package config

import "errors"

// Validation errors returned by [SyncdConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid remote store settings
	// (for example, missing base URL or bearer token).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidBridgeConfigs indicates invalid message bridge settings
	// (for example, empty hub address).
	ErrInvalidBridgeConfigs = errors.New("invalid bridge configuration")
)
