package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, "service-key", 2*time.Second)
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "key", time.Second)
	assert.Error(t, err)

	_, err = NewClient("https://example.supabase.co", "", time.Second)
	assert.Error(t, err)
}

func TestRequestSetsAuthHeaders(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`[]`))
	})

	_, err := client.Request(context.Background(), http.MethodGet, "snippets", nil, "user_id=eq.abc")
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/snippets", got.URL.Path)
	assert.Equal(t, "user_id=eq.abc", got.URL.RawQuery)
	assert.Equal(t, "service-key", got.Header.Get("apikey"))
	assert.Equal(t, "Bearer service-key", got.Header.Get("Authorization"))
	assert.Equal(t, "return=representation", got.Header.Get("Prefer"))
}

func TestRequestErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusForbidden)
	})

	_, err := client.Request(context.Background(), http.MethodGet, "snippets", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestRequestRequiresTable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := client.Request(context.Background(), http.MethodGet, "", nil, "")
	assert.Error(t, err)
}
