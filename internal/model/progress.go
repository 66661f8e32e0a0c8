package model

import "time"

// KataProgress records that a user completed a kata. One row per
// (user, kata) pair; completing an already-completed kata refreshes the
// timestamp rather than adding a row.
type KataProgress struct {
	UserID      string    `json:"userId"`
	KataID      string    `json:"kataId"`
	CompletedAt time.Time `json:"completedAt"`
}
