// Package browser is the daemon-side client of the browser bookmark store.
// All access goes through the message bridge: the privileged browser context
// owns the actual bookmarks API, this package owns turning its hierarchical
// tree into the flat, deterministic snapshot the reconciliation engine
// consumes.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
	"github.com/avelikov/go-bookmark-sync/models"
)

// ErrPeerRejected is returned when the browser context answered but reported
// a failure for the requested action.
var ErrPeerRejected = errors.New("browser peer rejected action")

// untitledFallback replaces empty titles so every record has a display name.
const untitledFallback = "Untitled"

// Sender is the slice of the bridge API the fetcher needs.
type Sender interface {
	Send(ctx context.Context, payload *models.ActionPayload, timeout time.Duration) (*models.ActionResponse, error)
}

// Fetcher reads the browser bookmark tree through the bridge and flattens it
// into snapshot order.
type Fetcher struct {
	bridge  Sender
	timeout time.Duration
	logger  *logger.Logger
}

// NewFetcher constructs a Fetcher. timeout bounds each bridge request; zero
// leaves the bridge default in force.
func NewFetcher(bridge Sender, timeout time.Duration, log *logger.Logger) *Fetcher {
	return &Fetcher{
		bridge:  bridge,
		timeout: timeout,
		logger:  log,
	}
}

// FetchLocal obtains the hierarchical tree from the browser context and
// returns it flattened. Traversal order is preserved in the output so
// repeated reconciliation runs on identical trees make identical decisions.
func (f *Fetcher) FetchLocal(ctx context.Context) ([]models.LocalBookmark, error) {
	resp, err := f.bridge.Send(ctx, &models.ActionPayload{Action: models.ActionGetBookmarks}, f.timeout)
	if err != nil {
		return nil, fmt.Errorf("get bookmarks over bridge: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrPeerRejected, resp.Error)
	}

	flat, skipped := Flatten(resp.Tree)
	if skipped > 0 {
		f.logger.Warn().Int("skipped", skipped).Msg("skipped malformed bookmark nodes")
	}

	return flat, nil
}

// Ping issues the lightweight connectivity probe.
func (f *Fetcher) Ping(ctx context.Context, timeout time.Duration) error {
	resp, err := f.bridge.Send(ctx, &models.ActionPayload{Action: models.ActionPing}, timeout)
	if err != nil {
		return fmt.Errorf("bridge ping: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("%w: %s", ErrPeerRejected, resp.Error)
	}
	return nil
}

// Add mirrors a single-record insert back into the browser store.
func (f *Fetcher) Add(ctx context.Context, title, url, parentID string) (*models.BookmarkNode, error) {
	resp, err := f.bridge.Send(ctx, &models.ActionPayload{
		Action:   models.ActionAddBookmark,
		Title:    title,
		URL:      url,
		ParentID: parentID,
	}, f.timeout)
	if err != nil {
		return nil, fmt.Errorf("add bookmark over bridge: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrPeerRejected, resp.Error)
	}
	return resp.Node, nil
}

// Remove mirrors a single-record delete back into the browser store.
func (f *Fetcher) Remove(ctx context.Context, id string) error {
	resp, err := f.bridge.Send(ctx, &models.ActionPayload{
		Action: models.ActionRemoveBookmark,
		ID:     id,
	}, f.timeout)
	if err != nil {
		return fmt.Errorf("remove bookmark over bridge: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("%w: %s", ErrPeerRejected, resp.Error)
	}
	return nil
}

// Flatten walks the hierarchical tree depth-first and emits every URL-bearing
// node as a leaf record. A node without a URL is a folder: its title joins
// the "/"-separated path accumulated for its children. Root-level leaves have
// an empty FolderPath. The second return value counts malformed nodes that
// were skipped (no URL, no children, nothing to do with them).
func Flatten(tree []models.BookmarkNode) ([]models.LocalBookmark, int) {
	out := make([]models.LocalBookmark, 0, 64)
	skipped := 0

	var walk func(nodes []models.BookmarkNode, path string)
	walk = func(nodes []models.BookmarkNode, path string) {
		for i := range nodes {
			node := &nodes[i]

			if node.URL != "" {
				out = append(out, leafRecord(node, path))
				continue
			}

			if len(node.Children) == 0 {
				// Empty folders carry nothing to sync; a node with neither
				// URL nor children and no id is malformed.
				if node.ID == "" {
					skipped++
				}
				continue
			}

			childPath := node.Title
			if path != "" && childPath != "" {
				childPath = path + "/" + childPath
			} else if childPath == "" {
				childPath = path
			}
			walk(node.Children, childPath)
		}
	}
	walk(tree, "")

	return out, skipped
}

func leafRecord(node *models.BookmarkNode, path string) models.LocalBookmark {
	title := node.Title
	if title == "" {
		title = untitledFallback
	}

	added := time.Now()
	if node.DateAdded > 0 {
		added = time.UnixMilli(node.DateAdded)
	}

	return models.LocalBookmark{
		LocalID:    node.ID,
		Title:      title,
		URL:        node.URL,
		DateAdded:  added,
		FolderPath: path,
		ParentID:   node.ParentID,
	}
}
