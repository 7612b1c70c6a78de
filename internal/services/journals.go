package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/daybook-labs/daybook-backend/internal/models"
)

// ErrNoSnippets is returned when aggregation is requested for a user with
// no snippets yet today. Handlers map it to a bad request, not a server
// error.
var ErrNoSnippets = errors.New("no snippets found for today")

// JournalStore is the journal row access the service needs. Satisfied by
// store.JournalRepository; tests substitute fakes.
type JournalStore interface {
	GetByUserDate(ctx context.Context, userID uuid.UUID, date models.Date) (*models.Journal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Journal, error)
	Upsert(ctx context.Context, userID uuid.UUID, date models.Date, entry string, sentimentScore *float64) (*models.Journal, error)
}

// Summarizer produces a journal entry and sentiment score from joined
// snippet text. Satisfied by JournalGenerator.
type Summarizer interface {
	Summarize(ctx context.Context, snippetsText string) (string, float64, error)
}

// JournalService reads, upserts, and aggregates journal entries.
type JournalService struct {
	journals  JournalStore
	snippets  SnippetStore
	generator Summarizer
}

func NewJournalService(journals JournalStore, snippets SnippetStore, generator Summarizer) *JournalService {
	return &JournalService{journals: journals, snippets: snippets, generator: generator}
}

func (s *JournalService) Get(ctx context.Context, userID uuid.UUID, date models.Date) (*models.Journal, error) {
	return s.journals.GetByUserDate(ctx, userID, date)
}

// List returns the user's journals, newest first by date.
func (s *JournalService) List(ctx context.Context, userID uuid.UUID) ([]models.Journal, error) {
	return s.journals.ListByUser(ctx, userID)
}

func (s *JournalService) Upsert(ctx context.Context, userID uuid.UUID, date models.Date, entry string, sentimentScore *float64) (*models.Journal, error) {
	return s.journals.Upsert(ctx, userID, date, entry, sentimentScore)
}

// CreateFromTodaySnippets turns the user's same-day snippets into a single
// generated journal entry for today and upserts it. With no snippets today
// it returns ErrNoSnippets and performs no store writes. A generation
// failure propagates (wrapping ErrGenerationFailed); nothing is written in
// that case either.
func (s *JournalService) CreateFromTodaySnippets(ctx context.Context, userID uuid.UUID) (*models.Journal, error) {
	snippets, err := s.snippets.ListToday(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list today's snippets: %w", err)
	}
	if len(snippets) == 0 {
		return nil, ErrNoSnippets
	}

	// Oldest first, blank-line separated: the order snippets were written
	// is the order the narrative should follow.
	entries := make([]string, 0, len(snippets))
	for _, sn := range snippets {
		entries = append(entries, sn.Entry)
	}
	snippetsText := strings.Join(entries, "\n\n")

	entry, score, err := s.generator.Summarize(ctx, snippetsText)
	if err != nil {
		return nil, err
	}

	return s.journals.Upsert(ctx, userID, models.Today(), entry, &score)
}
