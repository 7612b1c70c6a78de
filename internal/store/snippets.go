package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-labs/daybook-backend/internal/models"
)

const snippetsTable = "snippets"

// SnippetRepository provides snippet row access.
type SnippetRepository struct {
	client *Client
}

func NewSnippetRepository(client *Client) *SnippetRepository {
	return &SnippetRepository{client: client}
}

// Create inserts a snippet with the current UTC timestamp and returns the
// stored row, including the id the store assigned.
func (r *SnippetRepository) Create(ctx context.Context, userID uuid.UUID, entry string) (*models.Snippet, error) {
	payload := map[string]interface{}{
		"user_id":    userID.String(),
		"entry":      entry,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}

	data, err := r.client.Request(ctx, http.MethodPost, snippetsTable, payload, "")
	if err != nil {
		return nil, fmt.Errorf("create snippet: %w", err)
	}

	var rows []models.Snippet
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal snippet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create snippet: store returned no representation")
	}
	return &rows[0], nil
}

// ListByUser returns all snippets for a user, newest first.
func (r *SnippetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Snippet, error) {
	query := "user_id=eq." + userID.String() + "&order=created_at.desc"
	data, err := r.client.Request(ctx, http.MethodGet, snippetsTable, nil, query)
	if err != nil {
		return nil, fmt.Errorf("list snippets: %w", err)
	}

	var rows []models.Snippet
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal snippets: %w", err)
	}
	return rows, nil
}

// ListToday returns the user's snippets created on or after the start of
// the current UTC day, oldest first. The ascending order fixes the
// chronological order entries are concatenated into the generation prompt.
func (r *SnippetRepository) ListToday(ctx context.Context, userID uuid.UUID) ([]models.Snippet, error) {
	today := models.Today().String()
	query := "user_id=eq." + userID.String() + "&created_at=gte." + today + "&order=created_at.asc"
	data, err := r.client.Request(ctx, http.MethodGet, snippetsTable, nil, query)
	if err != nil {
		return nil, fmt.Errorf("list today's snippets: %w", err)
	}

	var rows []models.Snippet
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal snippets: %w", err)
	}
	return rows, nil
}
