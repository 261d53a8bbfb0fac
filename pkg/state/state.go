package state

import (
	"github.com/calafel/hopper/pkg/kinematic"
	"github.com/google/uuid"
)

// SessionState is a plain-value copy of the session's observable
// state, safe to hand across goroutines.
type SessionState struct {
	SessionID            uuid.UUID         `json:"session_id"`
	IsMouseCaptured      bool              `json:"is_mouse_captured"`
	PlayerGlobalPosition kinematic.Vector3 `json:"player_global_position"`
	CameraBasis          kinematic.Basis   `json:"camera_basis"`
	NumCoinsCollected    int               `json:"num_coins_collected"`
	NumCoinsAtStart      int               `json:"num_coins_at_start"`
}

// StateManager provides shared access to a session state mirror.
// Implementations must be thread-safe: the game's logic thread writes
// through Set while other goroutines read through Get.
type StateManager interface {
	// Get returns a copy of the mirrored state.
	Get() SessionState
	// Set replaces the mirrored state.
	Set(state SessionState)
}
