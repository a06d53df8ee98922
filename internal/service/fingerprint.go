package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/avelikov/go-bookmark-sync/models"
)

// SnapshotFingerprint derives a deterministic, order-independent hash of a
// local snapshot. Each record is encoded canonically, the encodings are
// sorted, and the concatenation is hashed, so equal record sets produce
// equal fingerprints regardless of traversal order. The orchestrator
// compares it against the stored value to skip runs with nothing to do.
func SnapshotFingerprint(snapshot []models.LocalBookmark) string {
	lines := make([]string, 0, len(snapshot))
	for _, b := range snapshot {
		lines = append(lines, strings.Join([]string{
			b.LocalID,
			b.Title,
			b.URL,
			b.FolderPath,
			b.ParentID,
			strconv.FormatInt(b.DateAdded.UnixMilli(), 10),
		}, "|"))
	}
	sort.Strings(lines)

	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}
