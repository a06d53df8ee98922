package models

import "time"

// LocalBookmark is a single leaf record produced by flattening the browser's
// hierarchical bookmark tree. LocalID is the browser-assigned node id and is
// the linking key between the two stores.
type LocalBookmark struct {
	LocalID    string    `json:"local_id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	DateAdded  time.Time `json:"date_added"`
	FolderPath string    `json:"folder_path,omitempty"`
	ParentID   string    `json:"parent_id,omitempty"`
}

// PersistedBookmark is a record stored on the remote side. LinkKey mirrors
// LocalBookmark.LocalID once the record has been associated with a specific
// browser bookmark; it is empty for records created on the remote side
// before any link existed.
type PersistedBookmark struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	LinkKey    string    `json:"link_key,omitempty"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	FolderPath string    `json:"folder_path,omitempty"`
	ParentID   string    `json:"parent_id,omitempty"`
	DateAdded  time.Time `json:"date_added"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BookmarkNode is one node of the hierarchical tree as the browser context
// reports it. A node with a URL is a leaf; a node without a URL is a folder
// whose Children are traversed. DateAdded is epoch milliseconds, matching
// the browser bookmarks API.
type BookmarkNode struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	URL       string         `json:"url,omitempty"`
	ParentID  string         `json:"parentId,omitempty"`
	DateAdded int64          `json:"dateAdded,omitempty"`
	Children  []BookmarkNode `json:"children,omitempty"`
}

// BookmarkFields is the mutable field set compared during reconciliation and
// carried by update operations.
type BookmarkFields struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	FolderPath string `json:"folder_path,omitempty"`
	ParentID   string `json:"parent_id,omitempty"`
}

// Fields extracts the mutable field set of a local bookmark.
func (b LocalBookmark) Fields() BookmarkFields {
	return BookmarkFields{
		Title:      b.Title,
		URL:        b.URL,
		FolderPath: b.FolderPath,
		ParentID:   b.ParentID,
	}
}

// Fields extracts the mutable field set of a persisted bookmark.
func (b PersistedBookmark) Fields() BookmarkFields {
	return BookmarkFields{
		Title:      b.Title,
		URL:        b.URL,
		FolderPath: b.FolderPath,
		ParentID:   b.ParentID,
	}
}
