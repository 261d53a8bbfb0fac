package state

import (
	"sync"
)

type InMemoryStateManager struct {
	lock  sync.RWMutex
	state SessionState
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{}
}

func (m *InMemoryStateManager) Get() SessionState {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state
}

func (m *InMemoryStateManager) Set(state SessionState) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.state = state
}
