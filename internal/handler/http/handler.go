package http

import (
	"context"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
	"github.com/avelikov/go-bookmark-sync/internal/store"
)

// Pinger reports whether the backing storage is reachable.
// *store.DB satisfies it via database/sql.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	bookmarks store.BookmarkRepository
	pinger    Pinger

	logger *logger.Logger
}

func NewHandler(bookmarks store.BookmarkRepository, pinger Pinger, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		bookmarks: bookmarks,
		pinger:    pinger,
		logger:    logger,
	}
}
