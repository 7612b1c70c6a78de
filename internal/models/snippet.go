package models

import (
	"time"

	"github.com/google/uuid"
)

// Snippet is a single timestamped text fragment submitted by a user.
// Snippets are immutable once created; the store assigns the id.
type Snippet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Entry     string    `json:"entry"`
}
