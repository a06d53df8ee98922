package service

import (
	"strings"

	"github.com/avelikov/go-bookmark-sync/models"
)

// reconcileEngine is the concrete implementation of [ReconcileEngine].
// It performs a purely in-memory comparison of the two snapshots; no storage
// layer or logger is required because the operation is stateless and
// produces no side effects.
type reconcileEngine struct{}

// NewReconcileEngine constructs a ReconcileEngine ready for use.
func NewReconcileEngine() ReconcileEngine {
	return &reconcileEngine{}
}

// BuildSyncOps implements [ReconcileEngine].
//
// It makes one pass over the local snapshot in traversal order, trying three
// matches in sequence for each record:
//
//   - Linked match: a persisted record whose link key equals the local id.
//     Differing mutable fields emit an update; identical fields emit nothing.
//   - Relink match: a persisted record with no link key whose normalized
//     title or URL equals the local record's. The first unclaimed match in
//     persisted-list order is claimed irreversibly and an update sets the
//     link key, preventing a duplicate insert for a record created on the
//     persisted side before any link existed.
//   - Insert: everything still unmatched.
//
// An independent pass over the persisted snapshot emits a delete for every
// linked record whose local counterpart is gone.
//
// Relink claiming is greedy, so processing order must be stable: both loops
// run in snapshot order and repeated calls on identical inputs produce
// identical decisions.
func (e *reconcileEngine) BuildSyncOps(local []models.LocalBookmark, remote []models.PersistedBookmark) models.SyncOps {
	var ops models.SyncOps

	// Index persisted records: linked ones by link key, unlinked ones in
	// list order for greedy claiming.
	linked := make(map[string]*models.PersistedBookmark, len(remote))
	unlinked := make([]*models.PersistedBookmark, 0, len(remote))
	for i := range remote {
		record := &remote[i]
		if record.LinkKey != "" {
			if _, dup := linked[record.LinkKey]; !dup {
				linked[record.LinkKey] = record
			}
			continue
		}
		unlinked = append(unlinked, record)
	}
	claimed := make([]bool, len(unlinked))

	localIDs := make(map[string]struct{}, len(local))

	for _, lb := range local {
		localIDs[lb.LocalID] = struct{}{}

		if record, ok := linked[lb.LocalID]; ok {
			if record.Fields() != lb.Fields() {
				ops.Updates = append(ops.Updates, models.UpdateOp{
					LinkKey: lb.LocalID,
					Fields:  lb.Fields(),
				})
			}
			continue
		}

		if idx := findRelinkMatch(unlinked, claimed, lb); idx >= 0 {
			claimed[idx] = true
			ops.Updates = append(ops.Updates, models.UpdateOp{
				LinkKey:    lb.LocalID,
				Fields:     lb.Fields(),
				SetLinkKey: true,
			})
			continue
		}

		ops.Inserts = append(ops.Inserts, lb)
	}

	for i := range remote {
		record := &remote[i]
		if record.LinkKey == "" {
			continue
		}
		if _, alive := localIDs[record.LinkKey]; !alive {
			ops.Deletes = append(ops.Deletes, record.LinkKey)
		}
	}

	return ops
}

// findRelinkMatch returns the index of the first unclaimed unlinked record
// whose normalized title or URL equals the local bookmark's, or -1.
func findRelinkMatch(unlinked []*models.PersistedBookmark, claimed []bool, lb models.LocalBookmark) int {
	title := normalize(lb.Title)
	url := normalize(lb.URL)

	for i, record := range unlinked {
		if claimed[i] {
			continue
		}
		if title != "" && normalize(record.Title) == title {
			return i
		}
		if url != "" && normalize(record.URL) == url {
			return i
		}
	}
	return -1
}

// normalize trims and case-folds a matching key so cosmetic differences do
// not defeat duplicate detection.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
