package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T, handler http.HandlerFunc) (*SentimentClassifier, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewSentimentClassifier("test-token", 2*time.Second)
	c.apiURL = srv.URL
	return c, srv
}

func TestClassifyPositiveWins(t *testing.T) {
	c, _ := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`[[{"label":"POSITIVE","score":0.93},{"label":"NEGATIVE","score":0.07}]]`))
	})

	score, raw := c.Classify(context.Background(), "a good day")
	assert.InDelta(t, 0.93, score, 1e-9)
	require.NotNil(t, raw)
}

func TestClassifyNegativeWins(t *testing.T) {
	c, _ := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[{"label":"POSITIVE","score":0.2},{"label":"NEGATIVE","score":0.8}]]`))
	})

	score, _ := c.Classify(context.Background(), "a rough day")
	// Signed magnitude of the winning label, not positive minus negative.
	assert.InDelta(t, -0.8, score, 1e-9)
}

func TestClassifyTieIsNegative(t *testing.T) {
	c, _ := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[{"label":"POSITIVE","score":0.5},{"label":"NEGATIVE","score":0.5}]]`))
	})

	score, _ := c.Classify(context.Background(), "an even day")
	assert.InDelta(t, -0.5, score, 1e-9)
}

func TestClassifyAPIErrorPayload(t *testing.T) {
	c, _ := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model is loading"}`))
	})

	score, raw := c.Classify(context.Background(), "text")
	assert.Zero(t, score)
	assert.Contains(t, string(raw), "model is loading")
}

func TestClassifyMalformedResponse(t *testing.T) {
	c, _ := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	score, _ := c.Classify(context.Background(), "text")
	assert.Zero(t, score)
}

func TestClassifyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`[[{"label":"POSITIVE","score":0.9}]]`))
	}))
	t.Cleanup(srv.Close)

	c := NewSentimentClassifier("", 50*time.Millisecond)
	c.apiURL = srv.URL

	score, _ := c.Classify(context.Background(), "text")
	assert.Zero(t, score)
}

func TestClassifyScoreAlwaysInRange(t *testing.T) {
	responses := []string{
		`[[{"label":"POSITIVE","score":1.0},{"label":"NEGATIVE","score":0.0}]]`,
		`[[{"label":"POSITIVE","score":0.0},{"label":"NEGATIVE","score":1.0}]]`,
		`[[]]`,
	}
	for _, resp := range responses {
		body := resp
		c, _ := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		score, _ := c.Classify(context.Background(), "text")
		assert.GreaterOrEqual(t, score, -1.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}
