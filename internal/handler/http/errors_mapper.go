package http

import (
	"errors"
	"net/http"

	"github.com/avelikov/go-bookmark-sync/internal/store"
)

var errorStatusMap = map[error]int{
	store.ErrBookmarkNotFound: http.StatusNotFound,
	store.ErrLinkKeyConflict:  http.StatusConflict,
	store.ErrNothingInserted:  http.StatusBadRequest,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommittingTransaction: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
