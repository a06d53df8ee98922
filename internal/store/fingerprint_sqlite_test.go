package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteFingerprintStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fingerprint yields empty string", func(t *testing.T) {
		s, err := NewSQLiteFingerprintStore(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })

		got, err := s.Get(ctx, "owner-1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("put then get round trip", func(t *testing.T) {
		s, err := NewSQLiteFingerprintStore(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })

		require.NoError(t, s.Put(ctx, "owner-1", "fp-one"))

		got, err := s.Get(ctx, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "fp-one", got)
	})

	t.Run("put replaces the previous value", func(t *testing.T) {
		s, err := NewSQLiteFingerprintStore(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })

		require.NoError(t, s.Put(ctx, "owner-1", "fp-one"))
		require.NoError(t, s.Put(ctx, "owner-1", "fp-two"))

		got, err := s.Get(ctx, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "fp-two", got)
	})

	t.Run("owners are isolated", func(t *testing.T) {
		s, err := NewSQLiteFingerprintStore(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })

		require.NoError(t, s.Put(ctx, "owner-1", "fp-one"))
		require.NoError(t, s.Put(ctx, "owner-2", "fp-two"))

		got, err := s.Get(ctx, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "fp-one", got)
	})

	t.Run("fingerprint survives reopening the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fingerprints.db")

		s, err := NewSQLiteFingerprintStore(path)
		require.NoError(t, err)
		require.NoError(t, s.Put(ctx, "owner-1", "fp-one"))
		require.NoError(t, s.Close())

		reopened, err := NewSQLiteFingerprintStore(path)
		require.NoError(t, err)
		t.Cleanup(func() { reopened.Close() })

		got, err := reopened.Get(ctx, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "fp-one", got)
	})

	t.Run("missing parent directory is created", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "fingerprints.db")

		s, err := NewSQLiteFingerprintStore(path)
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })

		require.NoError(t, s.Put(ctx, "owner-1", "fp-one"))
	})
}

func TestMemoryFingerprintStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFingerprintStore()

	got, err := s.Get(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Put(ctx, "owner-1", "fp-one"))

	got, err = s.Get(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "fp-one", got)
}
