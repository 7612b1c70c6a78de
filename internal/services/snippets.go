package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/daybook-labs/daybook-backend/internal/models"
)

// SnippetStore is the snippet row access the service needs. Satisfied by
// store.SnippetRepository; tests substitute fakes.
type SnippetStore interface {
	Create(ctx context.Context, userID uuid.UUID, entry string) (*models.Snippet, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Snippet, error)
	ListToday(ctx context.Context, userID uuid.UUID) ([]models.Snippet, error)
}

// SnippetService creates and lists snippets.
type SnippetService struct {
	store SnippetStore
}

func NewSnippetService(store SnippetStore) *SnippetService {
	return &SnippetService{store: store}
}

func (s *SnippetService) Create(ctx context.Context, userID uuid.UUID, entry string) (*models.Snippet, error) {
	return s.store.Create(ctx, userID, entry)
}

// List returns the user's snippets, newest first.
func (s *SnippetService) List(ctx context.Context, userID uuid.UUID) ([]models.Snippet, error) {
	return s.store.ListByUser(ctx, userID)
}
