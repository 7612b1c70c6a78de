package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/daybook-labs/daybook-backend/internal/models"
)

const journalsTable = "journals"

// JournalRepository provides journal row access.
type JournalRepository struct {
	client *Client
}

func NewJournalRepository(client *Client) *JournalRepository {
	return &JournalRepository{client: client}
}

// GetByUserDate returns the journal row for (user, date), or nil when none
// exists.
func (r *JournalRepository) GetByUserDate(ctx context.Context, userID uuid.UUID, date models.Date) (*models.Journal, error) {
	query := "user_id=eq." + userID.String() + "&date=eq." + date.String() + "&limit=1"
	data, err := r.client.Request(ctx, http.MethodGet, journalsTable, nil, query)
	if err != nil {
		return nil, fmt.Errorf("get journal: %w", err)
	}

	var rows []models.Journal
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal journals: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListByUser returns all journal rows for a user, newest first by date.
func (r *JournalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Journal, error) {
	query := "user_id=eq." + userID.String() + "&order=date.desc"
	data, err := r.client.Request(ctx, http.MethodGet, journalsTable, nil, query)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}

	var rows []models.Journal
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal journals: %w", err)
	}
	return rows, nil
}

// Upsert writes the journal entry for (user, date): an existing row is
// updated in place, preserving its id; otherwise a new row is inserted.
// sentimentScore is only written when non-nil.
//
// This is a read-then-write pair of separate store calls, not an atomic
// upsert. Concurrent calls for the same (user, date) can race and leave
// duplicate rows or lost updates; serializing per (user, date) or a unique
// constraint on the table would close the gap.
func (r *JournalRepository) Upsert(ctx context.Context, userID uuid.UUID, date models.Date, entry string, sentimentScore *float64) (*models.Journal, error) {
	existing, err := r.GetByUserDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"entry": entry,
	}
	if sentimentScore != nil {
		payload["sentiment_score"] = *sentimentScore
	}

	var data []byte
	if existing != nil {
		data, err = r.client.Request(ctx, http.MethodPatch, journalsTable, payload, "id=eq."+existing.ID.String())
		if err != nil {
			return nil, fmt.Errorf("update journal: %w", err)
		}
	} else {
		payload["user_id"] = userID.String()
		payload["date"] = date.String()
		data, err = r.client.Request(ctx, http.MethodPost, journalsTable, payload, "")
		if err != nil {
			return nil, fmt.Errorf("insert journal: %w", err)
		}
	}

	var rows []models.Journal
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal journal: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("upsert journal: store returned no representation")
	}
	return &rows[0], nil
}
