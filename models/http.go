package models

// BulkInsertRequest is the body of POST /api/bookmarks/bulk.
type BulkInsertRequest struct {
	Bookmarks []LocalBookmark `json:"bookmarks"`
	Length    int             `json:"length"`
}

// UpdateRequest is the body of PUT /api/bookmarks/{linkKey}. A relink is
// expressed through Op.SetLinkKey rather than a separate route.
type UpdateRequest struct {
	Op UpdateOp `json:"op"`
}

// BulkDeleteRequest is the body of DELETE /api/bookmarks/.
type BulkDeleteRequest struct {
	LinkKeys []string `json:"link_keys"`
	Length   int      `json:"length"`
}

// BookmarkListResponse is the body returned by GET /api/bookmarks/.
type BookmarkListResponse struct {
	Bookmarks []PersistedBookmark `json:"bookmarks"`
	Length    int                 `json:"length"`
}
