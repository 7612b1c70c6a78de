package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daybook-labs/daybook-backend/internal/handlers"
)

// SetupRoutes registers the API surface. summaryLimit applies only to the
// generation endpoint.
func SetupRoutes(r *chi.Mux, h *handlers.Handler, summaryLimit func(http.Handler) http.Handler) {
	r.Get("/", h.Root)

	// Snippet routes
	r.Post("/snippets", h.CreateSnippet)
	r.Get("/snippets/{userID}", h.GetSnippets)
	r.With(summaryLimit).Post("/snippets/with-summary", h.CreateSnippetWithSummary)

	// Journal routes
	r.Post("/journals", h.UpsertJournal)
	r.Get("/journals/{userID}", h.GetJournals)
	r.Get("/journals/{userID}/{date}", h.GetJournal)
}
