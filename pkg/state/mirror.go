package state

import (
	"github.com/calafel/hopper/pkg/kinematic"
	"github.com/calafel/hopper/pkg/session"
)

// SessionMirror keeps a StateManager in sync with a session's
// observable values. It must be constructed and closed on the game's
// logic thread; the mirrored state can then be read from anywhere.
type SessionMirror struct {
	manager      StateManager
	unsubscribes []func()
}

func NewSessionMirror(repo session.GameRepo, manager StateManager) *SessionMirror {
	m := &SessionMirror{
		manager: manager,
	}
	m.manager.Set(SessionState{
		SessionID:   repo.SessionID(),
		CameraBasis: kinematic.IdentityBasis(),
	})

	m.unsubscribes = append(m.unsubscribes,
		repo.IsMouseCaptured().Subscribe(func(captured bool) {
			m.update(func(s *SessionState) {
				s.IsMouseCaptured = captured
			})
		}),
		repo.PlayerGlobalPosition().Subscribe(func(pos kinematic.Vector3) {
			m.update(func(s *SessionState) {
				s.PlayerGlobalPosition = pos
			})
		}),
		repo.CameraBasis().Subscribe(func(basis kinematic.Basis) {
			m.update(func(s *SessionState) {
				s.CameraBasis = basis
			})
		}),
		repo.NumCoinsCollected().Subscribe(func(n int) {
			m.update(func(s *SessionState) {
				s.NumCoinsCollected = n
			})
		}),
		repo.NumCoinsAtStart().Subscribe(func(n int) {
			m.update(func(s *SessionState) {
				s.NumCoinsAtStart = n
			})
		}),
	)

	return m
}

// update runs on the logic thread, inside the observable broadcast.
func (m *SessionMirror) update(fn func(*SessionState)) {
	state := m.manager.Get()
	fn(&state)
	m.manager.Set(state)
}

// Close detaches the mirror from the session. The last mirrored state
// remains readable.
func (m *SessionMirror) Close() {
	for _, unsubscribe := range m.unsubscribes {
		unsubscribe()
	}
	m.unsubscribes = nil
}
