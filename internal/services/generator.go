package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	geminiModel           = "gemini-2.0-flash"
	defaultGeminiAPIURL   = "https://generativelanguage.googleapis.com/v1beta/models/" + geminiModel + ":generateContent"
	maxGeneratorRespBytes = 1 << 20 // 1 MiB

	journalPrompt = "Summarise these daily snippets into a concise and coherent journal entry in a reflective and personal tone. Write in first person and start directly with the content. Do not include any introductory text, meta-commentary, or explanations:\n\n"
)

// ErrGenerationFailed marks failures of the generative-text call. These
// propagate to the caller; there is no fallback to raw snippet text.
var ErrGenerationFailed = errors.New("journal generation failed")

// Classifier scores a text's sentiment. Implementations must not fail; see
// SentimentClassifier.
type Classifier interface {
	Classify(ctx context.Context, text string) (float64, json.RawMessage)
}

// JournalGenerator turns a day's worth of snippet text into a narrative
// journal entry via the Gemini API and pairs it with a sentiment score for
// the generated text.
type JournalGenerator struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	classifier Classifier
}

func NewJournalGenerator(apiKey string, timeout time.Duration, classifier Classifier) *JournalGenerator {
	return &JournalGenerator{
		apiURL:     defaultGeminiAPIURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		classifier: classifier,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Summarize generates a journal entry from the newline-joined snippet text
// (oldest first) and scores the generated entry's sentiment. A failed
// generation call is returned as an error wrapping ErrGenerationFailed; a
// failed classification is absorbed and yields the neutral score 0.0.
func (g *JournalGenerator) Summarize(ctx context.Context, snippetsText string) (string, float64, error) {
	entry, err := g.generate(ctx, snippetsText)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	score := 0.0
	if g.classifier != nil {
		score, _ = g.classifier.Classify(ctx, entry)
	}
	return entry, score, nil
}

func (g *JournalGenerator) generate(ctx context.Context, snippetsText string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: journalPrompt + snippetsText}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxGeneratorRespBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	entry := strings.TrimSpace(sb.String())
	if entry == "" {
		return "", fmt.Errorf("empty generated entry")
	}
	return entry, nil
}
