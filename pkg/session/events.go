package session

import "github.com/google/uuid"

// EndReason describes why a game session ended.
type EndReason int

const (
	EndReasonPlayerWon EndReason = iota
	EndReasonPlayerDied
	EndReasonQuit
)

func (r EndReason) String() string {
	switch r {
	case EndReasonPlayerWon:
		return "player_won"
	case EndReasonPlayerDied:
		return "player_died"
	case EndReasonQuit:
		return "quit"
	default:
		return "unknown"
	}
}

type JumpEvent struct {
}

type CoinCollectedEvent struct {
	CoinID       uuid.UUID
	NumCollected int
}

type JumpshroomUsedEvent struct {
}

type GameEndedEvent struct {
	Reason EndReason
}

type SaveRequestedEvent struct {
}

type SaveCompletedEvent struct {
}
