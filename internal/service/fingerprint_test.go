package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avelikov/go-bookmark-sync/models"
)

func TestSnapshotFingerprint(t *testing.T) {
	a := lb("b1", "Go", "https://go.dev")
	b := lb("b2", "Chi", "https://go-chi.io")
	c := lb("b3", "Zerolog", "https://github.com/rs/zerolog")

	t.Run("identical snapshots produce identical fingerprints", func(t *testing.T) {
		assert.Equal(t,
			SnapshotFingerprint([]models.LocalBookmark{a, b, c}),
			SnapshotFingerprint([]models.LocalBookmark{a, b, c}))
	})

	t.Run("order does not matter", func(t *testing.T) {
		assert.Equal(t,
			SnapshotFingerprint([]models.LocalBookmark{a, b, c}),
			SnapshotFingerprint([]models.LocalBookmark{c, a, b}))
	})

	t.Run("changed title changes the fingerprint", func(t *testing.T) {
		changed := a
		changed.Title = "Go Language"
		assert.NotEqual(t,
			SnapshotFingerprint([]models.LocalBookmark{a, b}),
			SnapshotFingerprint([]models.LocalBookmark{changed, b}))
	})

	t.Run("changed folder changes the fingerprint", func(t *testing.T) {
		moved := a
		moved.FolderPath = "Bookmarks Bar/Dev"
		assert.NotEqual(t,
			SnapshotFingerprint([]models.LocalBookmark{a}),
			SnapshotFingerprint([]models.LocalBookmark{moved}))
	})

	t.Run("changed date changes the fingerprint", func(t *testing.T) {
		later := a
		later.DateAdded = a.DateAdded.Add(time.Second)
		assert.NotEqual(t,
			SnapshotFingerprint([]models.LocalBookmark{a}),
			SnapshotFingerprint([]models.LocalBookmark{later}))
	})

	t.Run("removed record changes the fingerprint", func(t *testing.T) {
		assert.NotEqual(t,
			SnapshotFingerprint([]models.LocalBookmark{a, b}),
			SnapshotFingerprint([]models.LocalBookmark{a}))
	})

	t.Run("empty snapshot is stable", func(t *testing.T) {
		assert.Equal(t, SnapshotFingerprint(nil), SnapshotFingerprint([]models.LocalBookmark{}))
	})
}
