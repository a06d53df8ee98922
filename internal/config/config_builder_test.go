package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Bridge: Bridge{HubAddress: "localhost:9000"}},
		&StructuredConfig{Adapter: Adapter{BaseURL: "http://localhost:8080"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", cfg.Bridge.HubAddress)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.BaseURL)
}

func TestBuild_EarlierConfigWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Bridge: Bridge{HubAddress: "first:1"}},
		&StructuredConfig{Bridge: Bridge{HubAddress: "second:2"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	// mergo only fills empty fields, so the first source keeps priority.
	assert.Equal(t, "first:1", cfg.Bridge.HubAddress)
}

func TestWithJSON(t *testing.T) {
	t.Run("no json path configured is a no-op", func(t *testing.T) {
		b := newConfigBuilder().withJSON()
		assert.NoError(t, b.err)
		assert.Empty(t, b.configs)
	})

	t.Run("loads values from the file", func(t *testing.T) {
		var fileCfg StructuredJSONConfig
		fileCfg.Bridge.HubAddress = "localhost:9100"
		fileCfg.Workers.SyncInterval = Duration(10 * time.Minute)
		path := writeTempJSONConfig(t, fileCfg)

		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
		b = b.withJSON()
		require.NoError(t, b.err)

		cfg, err := b.build()
		require.NoError(t, err)
		assert.Equal(t, "localhost:9100", cfg.Bridge.HubAddress)
		assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
	})

	t.Run("missing file records an error", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
		b = b.withJSON()
		assert.Error(t, b.err)
	})
}

func TestWithEnv(t *testing.T) {
	t.Setenv("BRIDGE_HUB_ADDRESS", "envhost:9200")
	t.Setenv("WORKERS_SYNC_INTERVAL", "90s")

	b := newConfigBuilder().withEnv()
	require.NoError(t, b.err)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "envhost:9200", cfg.Bridge.HubAddress)
	assert.Equal(t, 90*time.Second, cfg.Workers.SyncInterval)
}

func TestDurationJSON(t *testing.T) {
	t.Run("parses duration strings", func(t *testing.T) {
		var d Duration
		require.NoError(t, json.Unmarshal([]byte(`"1h30m"`), &d))
		assert.Equal(t, Duration(90*time.Minute), d)
	})

	t.Run("parses numeric nanoseconds", func(t *testing.T) {
		var d Duration
		require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
		assert.Equal(t, Duration(time.Second), d)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		var d Duration
		assert.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
	})

	t.Run("marshals back to a string", func(t *testing.T) {
		data, err := json.Marshal(Duration(5 * time.Second))
		require.NoError(t, err)
		assert.Equal(t, `"5s"`, string(data))
	})
}
