package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/ping", h.ping)
	})

	// bookmark routes require a bearer token carrying the owner's subject
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/bookmarks/", h.list)
		r.Post("/api/bookmarks/bulk", h.bulkInsert)
		r.Put("/api/bookmarks/{linkKey}", h.update)
		r.Delete("/api/bookmarks/", h.bulkDelete)
	})

	return router
}
