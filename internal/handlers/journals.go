package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/daybook-labs/daybook-backend/internal/models"
)

type upsertJournalRequest struct {
	UserID         string   `json:"user_id"`
	Date           string   `json:"date"`
	Entry          string   `json:"entry"`
	SentimentScore *float64 `json:"sentiment_score"`
}

// UpsertJournal handles POST /journals: create or overwrite the single
// journal row for (user, date).
func (h *Handler) UpsertJournal(w http.ResponseWriter, r *http.Request) {
	var req upsertJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id must be a valid UUID")
		return
	}
	date, err := models.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD form")
		return
	}
	entry := strings.TrimSpace(req.Entry)
	if entry == "" {
		writeError(w, http.StatusBadRequest, "entry must not be empty")
		return
	}
	if req.SentimentScore != nil && (*req.SentimentScore < -1 || *req.SentimentScore > 1) {
		writeError(w, http.StatusBadRequest, "sentiment_score must be within [-1, 1]")
		return
	}

	journal, err := h.journals.Upsert(r.Context(), userID, date, entry, req.SentimentScore)
	if err != nil {
		log.Printf("upsert journal: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save journal entry")
		return
	}

	writeJSON(w, http.StatusOK, journal)
}

// GetJournal handles GET /journals/{userID}/{date}.
func (h *Handler) GetJournal(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id must be a valid UUID")
		return
	}
	date, err := models.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD form")
		return
	}

	journal, err := h.journals.Get(r.Context(), userID, date)
	if err != nil {
		log.Printf("get journal: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch journal entry")
		return
	}
	if journal == nil {
		writeError(w, http.StatusNotFound, "Journal not found")
		return
	}

	writeJSON(w, http.StatusOK, journal)
}

// GetJournals handles GET /journals/{userID}, newest first by date.
func (h *Handler) GetJournals(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "user_id must be a valid UUID")
		return
	}

	journals, err := h.journals.List(r.Context(), userID)
	if err != nil {
		log.Printf("list journals: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list journal entries")
		return
	}
	if journals == nil {
		journals = []models.Journal{}
	}

	writeJSON(w, http.StatusOK, journals)
}
