package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects partial configs, one per source. build merges them
// in the order they were added; earlier sources keep precedence for fields
// they set, since mergo only fills what is still zero.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected partials into one config and validates it.
// Source errors recorded along the way abort the build.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, partial := range b.configs {
		if err := mergo.Merge(merged, partial); err != nil {
			return nil, fmt.Errorf("error merging config sources: %w", err)
		}
	}

	return merged, merged.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	fromEnv := &StructuredConfig{}
	if err := parseEnv(fromEnv); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, fromEnv)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	b.configs = append(b.configs, ParseFlags())
	return b
}

// withJSON loads the optional JSON file. The path comes out of the sources
// already collected (the CONFIG env var or the -c/-config flag), so this
// source has to be added after withEnv and withFlags.
func (b *configBuilder) withJSON() *configBuilder {
	var path string
	for _, partial := range b.configs {
		if partial.JSONFilePath != "" {
			path = partial.JSONFilePath
		}
	}
	if path == "" {
		return b
	}

	fromFile, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, fromFile)
	return b
}
