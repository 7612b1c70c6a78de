package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/daybook-labs/daybook-backend/internal/models"
	"github.com/daybook-labs/daybook-backend/internal/services"
)

type createSnippetRequest struct {
	UserID string `json:"user_id"`
	Entry  string `json:"entry"`
}

func (req *createSnippetRequest) validate() (uuid.UUID, string, bool) {
	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		return uuid.Nil, "", false
	}
	entry := strings.TrimSpace(req.Entry)
	if entry == "" {
		return uuid.Nil, "", false
	}
	return userID, entry, true
}

// CreateSnippet handles POST /snippets.
func (h *Handler) CreateSnippet(w http.ResponseWriter, r *http.Request) {
	var req createSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, entry, ok := req.validate()
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id must be a valid UUID and entry must not be empty")
		return
	}

	snippet, err := h.snippets.Create(r.Context(), userID, entry)
	if err != nil {
		log.Printf("create snippet: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create snippet")
		return
	}

	writeJSON(w, http.StatusCreated, snippet)
}

// GetSnippets handles GET /snippets/{userID}, newest first.
func (h *Handler) GetSnippets(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id must be a valid UUID")
		return
	}

	snippets, err := h.snippets.List(r.Context(), userID)
	if err != nil {
		log.Printf("list snippets: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list snippets")
		return
	}
	if snippets == nil {
		snippets = []models.Snippet{}
	}

	writeJSON(w, http.StatusOK, snippets)
}

// CreateSnippetWithSummary handles POST /snippets/with-summary: it creates
// the snippet, then aggregates today's snippets into the user's journal for
// today and returns the resulting journal row.
func (h *Handler) CreateSnippetWithSummary(w http.ResponseWriter, r *http.Request) {
	var req createSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, entry, ok := req.validate()
	if !ok {
		writeError(w, http.StatusBadRequest, "user_id must be a valid UUID and entry must not be empty")
		return
	}

	if _, err := h.snippets.Create(r.Context(), userID, entry); err != nil {
		log.Printf("create snippet: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create snippet")
		return
	}

	journal, err := h.journals.CreateFromTodaySnippets(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoSnippets):
			writeError(w, http.StatusBadRequest, "No snippets found for today")
		case errors.Is(err, services.ErrGenerationFailed):
			log.Printf("generate journal: %v", err)
			writeError(w, http.StatusBadGateway, "Failed to generate journal entry")
		default:
			log.Printf("aggregate journal: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create journal entry")
		}
		return
	}

	writeJSON(w, http.StatusOK, journal)
}
