package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-labs/daybook-backend/internal/models"
)

type fakeSnippetStore struct {
	today    []models.Snippet
	todayErr error
}

func (f *fakeSnippetStore) Create(_ context.Context, userID uuid.UUID, entry string) (*models.Snippet, error) {
	return &models.Snippet{ID: uuid.New(), UserID: userID, Entry: entry, CreatedAt: time.Now().UTC()}, nil
}

func (f *fakeSnippetStore) ListByUser(_ context.Context, _ uuid.UUID) ([]models.Snippet, error) {
	return f.today, nil
}

func (f *fakeSnippetStore) ListToday(_ context.Context, _ uuid.UUID) ([]models.Snippet, error) {
	return f.today, f.todayErr
}

// fakeJournalStore emulates the read-then-write upsert over an in-memory
// map keyed by (user, date), preserving row ids across overwrites.
type fakeJournalStore struct {
	rows    map[string]*models.Journal
	upserts int
}

func newFakeJournalStore() *fakeJournalStore {
	return &fakeJournalStore{rows: make(map[string]*models.Journal)}
}

func journalKey(userID uuid.UUID, date models.Date) string {
	return userID.String() + "|" + date.String()
}

func (f *fakeJournalStore) GetByUserDate(_ context.Context, userID uuid.UUID, date models.Date) (*models.Journal, error) {
	return f.rows[journalKey(userID, date)], nil
}

func (f *fakeJournalStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Journal, error) {
	var out []models.Journal
	for _, j := range f.rows {
		if j.UserID == userID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJournalStore) Upsert(_ context.Context, userID uuid.UUID, date models.Date, entry string, score *float64) (*models.Journal, error) {
	f.upserts++
	key := journalKey(userID, date)
	if existing, ok := f.rows[key]; ok {
		existing.Entry = entry
		if score != nil {
			existing.SentimentScore = score
		}
		return existing, nil
	}
	j := &models.Journal{ID: uuid.New(), UserID: userID, Date: date, Entry: entry, SentimentScore: score}
	f.rows[key] = j
	return j, nil
}

type stubSummarizer struct {
	entry    string
	score    float64
	err      error
	lastText string
	calls    int
}

func (s *stubSummarizer) Summarize(_ context.Context, snippetsText string) (string, float64, error) {
	s.calls++
	s.lastText = snippetsText
	if s.err != nil {
		return "", 0, s.err
	}
	return s.entry, s.score, nil
}

func snippetAt(entry string, at time.Time) models.Snippet {
	return models.Snippet{ID: uuid.New(), UserID: uuid.New(), Entry: entry, CreatedAt: at}
}

func TestCreateFromTodaySnippetsNoContent(t *testing.T) {
	journals := newFakeJournalStore()
	gen := &stubSummarizer{}
	svc := NewJournalService(journals, &fakeSnippetStore{}, gen)

	_, err := svc.CreateFromTodaySnippets(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoSnippets)
	// No generation and no store writes on the empty-input path.
	assert.Zero(t, gen.calls)
	assert.Zero(t, journals.upserts)
}

func TestCreateFromTodaySnippetsJoinsOldestFirst(t *testing.T) {
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	snippets := &fakeSnippetStore{today: []models.Snippet{
		snippetAt("Woke up early", day.Add(8*time.Hour)),
		snippetAt("Finished the report", day.Add(15*time.Hour)),
	}}
	gen := &stubSummarizer{entry: "A productive day.", score: 0.7}
	journals := newFakeJournalStore()
	svc := NewJournalService(journals, snippets, gen)

	journal, err := svc.CreateFromTodaySnippets(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "Woke up early\n\nFinished the report", gen.lastText)
	assert.Equal(t, "A productive day.", journal.Entry)
	require.NotNil(t, journal.SentimentScore)
	assert.InDelta(t, 0.7, *journal.SentimentScore, 1e-9)
	assert.Equal(t, models.Today().String(), journal.Date.String())
}

func TestCreateFromTodaySnippetsOverwritesSameRow(t *testing.T) {
	userID := uuid.New()
	snippets := &fakeSnippetStore{today: []models.Snippet{snippetAt("Morning coffee", time.Now().UTC())}}
	gen := &stubSummarizer{entry: "First draft.", score: 0.1}
	journals := newFakeJournalStore()
	svc := NewJournalService(journals, snippets, gen)

	first, err := svc.CreateFromTodaySnippets(context.Background(), userID)
	require.NoError(t, err)

	gen.entry = "Second draft."
	second, err := svc.CreateFromTodaySnippets(context.Background(), userID)
	require.NoError(t, err)

	// Same (user, date) row, overwritten in place.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Second draft.", second.Entry)
	assert.Len(t, journals.rows, 1)
}

func TestCreateFromTodaySnippetsGenerationFailure(t *testing.T) {
	snippets := &fakeSnippetStore{today: []models.Snippet{snippetAt("Something", time.Now().UTC())}}
	gen := &stubSummarizer{err: fmt.Errorf("%w: upstream 500", ErrGenerationFailed)}
	journals := newFakeJournalStore()
	svc := NewJournalService(journals, snippets, gen)

	_, err := svc.CreateFromTodaySnippets(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Zero(t, journals.upserts)
}

func TestCreateFromTodaySnippetsListFailure(t *testing.T) {
	snippets := &fakeSnippetStore{todayErr: errors.New("store unreachable")}
	svc := NewJournalService(newFakeJournalStore(), snippets, &stubSummarizer{})

	_, err := svc.CreateFromTodaySnippets(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSnippets)
}
