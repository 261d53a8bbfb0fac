package state

import (
	"testing"

	"github.com/calafel/hopper/pkg/kinematic"
	"github.com/calafel/hopper/pkg/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionMirror_TracksObservables(t *testing.T) {
	repo := session.NewGameRepo()
	defer repo.Close()

	manager := NewInMemoryStateManager()
	mirror := NewSessionMirror(repo, manager)
	defer mirror.Close()

	assert.Equal(t, repo.SessionID(), manager.Get().SessionID)

	repo.Resume()
	repo.OnNumCoinsAtStart(5)
	repo.StartCoinCollection(uuid.New())
	repo.SetPlayerGlobalPosition(kinematic.Vector3{X: 7, Y: 8, Z: 9})
	basis := kinematic.IdentityBasis().RotatedY(1)
	repo.SetCameraBasis(basis)

	got := manager.Get()
	assert.True(t, got.IsMouseCaptured)
	assert.Equal(t, 5, got.NumCoinsAtStart)
	assert.Equal(t, 1, got.NumCoinsCollected)
	assert.Equal(t, kinematic.Vector3{X: 7, Y: 8, Z: 9}, got.PlayerGlobalPosition)
	assert.Equal(t, basis, got.CameraBasis)
}

func TestSessionMirror_CloseStopsTracking(t *testing.T) {
	repo := session.NewGameRepo()
	defer repo.Close()

	manager := NewInMemoryStateManager()
	mirror := NewSessionMirror(repo, manager)

	repo.OnNumCoinsAtStart(3)
	mirror.Close()
	repo.OnNumCoinsAtStart(10)

	assert.Equal(t, 3, manager.Get().NumCoinsAtStart)
}
