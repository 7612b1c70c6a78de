package models

import (
	"github.com/google/uuid"
)

// Journal is the aggregated narrative entry for one user on one calendar
// day. At most one row should exist per (user_id, date); the upsert enforces
// this with a read-before-write, not a store-level constraint.
type Journal struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Date           Date      `json:"date"`
	Entry          string    `json:"entry"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
}
