package model

import "time"

// Snippet is a saved playground program. Snippets created while logged in
// carry the owner's user ID; anonymous saves leave UserID empty.
//
// The `json:"..."` struct tags control how encoding/json serialises the
// struct — camelCase to match the rest of our own API surface.
type Snippet struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId,omitempty"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
