// Package store provides access to the Supabase (PostgREST) tables that
// hold snippets and journals. Every read re-fetches; this process keeps no
// authoritative copy of any row.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBytes = 4 << 20 // 4 MiB

// Client wraps the Supabase REST API.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a Supabase client for the given project URL and service
// key. timeout bounds every request to the store.
func NewClient(projectURL, serviceKey string, timeout time.Duration) (*Client, error) {
	if projectURL == "" {
		return nil, fmt.Errorf("project URL is required")
	}
	if serviceKey == "" {
		return nil, fmt.Errorf("service key is required")
	}
	if _, err := url.Parse(projectURL); err != nil {
		return nil, fmt.Errorf("invalid project URL: %w", err)
	}

	return &Client{
		baseURL:    strings.TrimRight(projectURL, "/") + "/rest/v1",
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Request performs a REST call against a table. query is an already-encoded
// PostgREST query string (e.g. "user_id=eq.<id>&order=created_at.desc").
// Responses with status >= 400 are returned as errors.
func (c *Client) Request(ctx context.Context, method, table string, body interface{}, query string) ([]byte, error) {
	if table == "" {
		return nil, fmt.Errorf("table is required")
	}

	reqURL := c.baseURL + "/" + url.PathEscape(table)
	if query != "" {
		reqURL += "?" + query
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("store API error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}
