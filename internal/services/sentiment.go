package services

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const defaultSentimentAPIURL = "https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"

// SentimentClassifier scores the emotional valence of a text using a hosted
// binary classifier.
//
// Classify never fails: a transport error, timeout, API error payload, or
// malformed response yields the neutral score 0.0 together with a diagnostic
// payload. Callers can rely on always getting a usable score.
type SentimentClassifier struct {
	apiURL     string
	token      string
	httpClient *http.Client
}

func NewSentimentClassifier(token string, timeout time.Duration) *SentimentClassifier {
	return &SentimentClassifier{
		apiURL:     defaultSentimentAPIURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns a score in [-1, 1] for the text, plus the raw API
// response for diagnostics. The score is the signed confidence of the
// winning label: +POSITIVE confidence when POSITIVE beats NEGATIVE,
// -NEGATIVE confidence otherwise. It is not a positive-minus-negative
// composite.
func (c *SentimentClassifier) Classify(ctx context.Context, text string) (float64, json.RawMessage) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		log.Printf("sentiment: marshal payload: %v", err)
		return 0.0, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		log.Printf("sentiment: create request: %v", err)
		return 0.0, nil
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("sentiment: request failed: %v", err)
		return 0.0, json.RawMessage(`{"error":"request failed"}`)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		log.Printf("sentiment: decode response: %v", err)
		return 0.0, json.RawMessage(`{"error":"malformed response"}`)
	}

	// The API reports failures as {"error": "..."} instead of a status code
	// we can rely on here.
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
		log.Printf("sentiment: API error: %s", apiErr.Error)
		return 0.0, raw
	}

	var results [][]labelScore
	if err := json.Unmarshal(raw, &results); err != nil || len(results) == 0 {
		log.Printf("sentiment: unexpected response shape")
		return 0.0, raw
	}

	var positive, negative float64
	for _, ls := range results[0] {
		switch ls.Label {
		case "POSITIVE":
			positive = ls.Score
		case "NEGATIVE":
			negative = ls.Score
		}
	}

	if positive > negative {
		return positive, raw
	}
	return -negative, raw
}
