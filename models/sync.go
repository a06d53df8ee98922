package models

// UpdateOp is a single update against the persisted store, keyed by link key.
// SetLinkKey marks a relink: the target record currently has no link key and
// the op both claims it and refreshes the mutable fields.
type UpdateOp struct {
	LinkKey    string         `json:"link_key"`
	Fields     BookmarkFields `json:"fields"`
	SetLinkKey bool           `json:"set_link_key,omitempty"`
}

// SyncOps is the full operation set produced by one reconciliation pass.
// Inserts carry complete local records, Updates are keyed by link key, and
// Deletes is the list of link keys gone from the browser side.
type SyncOps struct {
	Inserts []LocalBookmark `json:"inserts"`
	Updates []UpdateOp      `json:"updates"`
	Deletes []string        `json:"deletes"`
}

// HasChanges reports whether the op set contains any work.
func (o SyncOps) HasChanges() bool {
	return len(o.Inserts) > 0 || len(o.Updates) > 0 || len(o.Deletes) > 0
}

// SyncState names the phase a sync run is in. A run moves strictly forward;
// StateFailed absorbs any fatal error raised before apply completes.
type SyncState string

const (
	StateIdle                 SyncState = "idle"
	StateCheckingConnectivity SyncState = "checking_connectivity"
	StateFetchingLocal        SyncState = "fetching_local"
	StateFetchingRemote       SyncState = "fetching_remote"
	StateReconciling          SyncState = "reconciling"
	StateApplying             SyncState = "applying"
	StateDone                 SyncState = "done"
	StateFailed               SyncState = "failed"
)

// SyncReport is the outcome of one orchestration pass. Counts are always
// populated, including on partial failure; Err carries the fatal error when
// State is StateFailed.
type SyncReport struct {
	State      SyncState `json:"state"`
	Inserted   int       `json:"inserted"`
	Updated    int       `json:"updated"`
	Removed    int       `json:"removed"`
	Total      int       `json:"total"`
	HasChanges bool      `json:"has_changes"`
	Err        error     `json:"-"`
}
