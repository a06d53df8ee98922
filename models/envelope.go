package models

// Bridge envelope source tags. Every envelope carries exactly one; peers use
// them to tell their own traffic apart from the other side's and from
// unrelated broadcast noise.
const (
	SourceSyncd      = "bookmark-syncd"
	SourceBackground = "bookmark-background"
	SourceContent    = "bookmark-content"
)

// Actions understood by the browser-side peer.
const (
	ActionGetBookmarks   = "getBookmarks"
	ActionAddBookmark    = "addBookmark"
	ActionRemoveBookmark = "removeBookmark"
	ActionPing           = "ping"
)

// Change-event kinds pushed by the browser side when the native bookmark
// store mutates. They trigger sync runs and carry no other data the core
// logic consumes.
const (
	EventBookmarkCreated = "bookmarkCreated"
	EventBookmarkRemoved = "bookmarkRemoved"
	EventBookmarkChanged = "bookmarkChanged"
	EventBookmarkMoved   = "bookmarkMoved"
)

// ActionPayload is the request half of the bridge wire format. Action is
// always set; the remaining fields are action-specific arguments.
type ActionPayload struct {
	Action   string `json:"action"`
	Title    string `json:"title,omitempty"`
	URL      string `json:"url,omitempty"`
	ParentID string `json:"parentId,omitempty"`
	ID       string `json:"id,omitempty"`
}

// ActionResponse is the response half of the bridge wire format.
type ActionResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Tree    []BookmarkNode `json:"tree,omitempty"`
	Node    *BookmarkNode  `json:"node,omitempty"`
}

// Envelope is the bridge wire format. A request envelope carries Payload, a
// response envelope carries Response; RequestID correlates the two. Event
// carries an unsolicited change notification and has no RequestID.
type Envelope struct {
	Source    string          `json:"source"`
	RequestID string          `json:"requestId,omitempty"`
	Payload   *ActionPayload  `json:"payload,omitempty"`
	Response  *ActionResponse `json:"response,omitempty"`
	Event     string          `json:"event,omitempty"`
}

// IsRequest reports whether the envelope is the request half of an exchange.
func (e *Envelope) IsRequest() bool {
	return e.Payload != nil && e.RequestID != ""
}

// IsResponse reports whether the envelope is the response half of an exchange.
func (e *Envelope) IsResponse() bool {
	return e.Response != nil && e.RequestID != ""
}
