package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/daybook-labs/daybook-backend/internal/services"
)

// Handler holds the services the HTTP surface is built on. All collaborators
// are injected so tests can substitute fakes.
type Handler struct {
	snippets *services.SnippetService
	journals *services.JournalService
}

func New(snippets *services.SnippetService, journals *services.JournalService) *Handler {
	return &Handler{snippets: snippets, journals: journals}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

// Root responds to GET / with a welcome message.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Daybook API"})
}
