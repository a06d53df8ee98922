package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
	"github.com/avelikov/go-bookmark-sync/models"
)

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	bookmarks, err := h.bookmarks.GetAll(r.Context(), ownerID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.list").Msg("error getting bookmarks")
		http.Error(w, "error getting bookmarks", statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, models.BookmarkListResponse{
		Bookmarks: bookmarks,
		Length:    len(bookmarks),
	})
}

func (h *Handler) bulkInsert(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var body models.BulkInsertRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.bulkInsert").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if len(body.Bookmarks) == 0 {
		http.Error(w, "no bookmarks provided", http.StatusBadRequest)
		return
	}

	inserted, err := h.bookmarks.BulkInsert(r.Context(), ownerID, body.Bookmarks)
	if err != nil {
		log.Err(err).Str("func", "*Handler.bulkInsert").Msg("error inserting bookmarks")
		http.Error(w, "error inserting bookmarks", statusFromError(err))
		return
	}

	writeJSON(w, http.StatusCreated, models.BookmarkListResponse{
		Bookmarks: inserted,
		Length:    len(inserted),
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var body models.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.update").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	// the path parameter wins over whatever the body carries
	body.Op.LinkKey = chi.URLParam(r, "linkKey")
	if body.Op.LinkKey == "" {
		http.Error(w, "no link key provided", http.StatusBadRequest)
		return
	}

	updated, err := h.bookmarks.UpdateByLinkKey(r.Context(), ownerID, body.Op)
	if err != nil {
		log.Err(err).Str("func", "*Handler.update").Str("link_key", body.Op.LinkKey).Msg("error updating bookmark")
		http.Error(w, "error updating bookmark", statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) bulkDelete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var body models.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Str("func", "*Handler.bulkDelete").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if len(body.LinkKeys) == 0 {
		http.Error(w, "no link keys provided", http.StatusBadRequest)
		return
	}

	if err := h.bookmarks.BulkDeleteByLinkKey(r.Context(), ownerID, body.LinkKeys); err != nil {
		log.Err(err).Str("func", "*Handler.bulkDelete").Msg("error deleting bookmarks")
		http.Error(w, "error deleting bookmarks", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.PingContext(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("database is unreachable")
		http.Error(w, "database is unreachable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
