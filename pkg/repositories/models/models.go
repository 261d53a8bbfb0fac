package models

import "github.com/google/uuid"

// Snapshot is a point-in-time save of a game session.
type Snapshot struct {
	ID             uuid.UUID `json:"id"`
	SessionID      uuid.UUID `json:"session_id"`
	CreatedAt      int64     `json:"created_at"`
	X              float64   `json:"x"`
	Y              float64   `json:"y"`
	Z              float64   `json:"z"`
	CoinsCollected int       `json:"coins_collected"`
	CoinsAtStart   int       `json:"coins_at_start"`
}
