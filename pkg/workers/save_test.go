package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/calafel/hopper/pkg/kinematic"
	"github.com/calafel/hopper/pkg/repositories"
	"github.com/calafel/hopper/pkg/repositories/models"
	"github.com/calafel/hopper/pkg/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	mu        sync.Mutex
	snapshots []*models.Snapshot
}

func (r *fakeRepository) Close(ctx context.Context) error {
	return nil
}

func (r *fakeRepository) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, snapshot)
	return nil
}

func (r *fakeRepository) LoadLatestSnapshot(ctx context.Context, sessionID uuid.UUID) (*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return nil, &repositories.ErrNotFound{}
	}
	return r.snapshots[len(r.snapshots)-1], nil
}

func (r *fakeRepository) ListSnapshots(ctx context.Context, sessionID uuid.UUID) ([]*models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Snapshot{}, r.snapshots...), nil
}

func (r *fakeRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func TestSaveWorker_SavesAndCompletes(t *testing.T) {
	repo := session.NewGameRepo()
	defer repo.Close()
	fake := &fakeRepository{}

	worker := NewSaveWorker(NewSaveWorkerOptions{
		Session:    repo,
		Repository: fake,
		QueueSize:  8,
	})
	defer worker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	completions := 0
	repo.SaveCompleted().Subscribe(func(session.SaveCompletedEvent) {
		completions++
	})

	repo.OnNumCoinsAtStart(3)
	repo.StartCoinCollection(uuid.New())
	repo.SetPlayerGlobalPosition(kinematic.Vector3{X: 1, Y: 2, Z: 3})
	repo.StartSaving()

	require.Eventually(t, func() bool {
		return fake.count() == 1
	}, time.Second, 5*time.Millisecond)

	// Completion is not delivered until the logic loop flushes.
	assert.Equal(t, 0, completions)
	require.Eventually(t, func() bool {
		worker.Flush()
		return completions == 1
	}, time.Second, 5*time.Millisecond)

	snapshot := fake.snapshots[0]
	assert.Equal(t, repo.SessionID(), snapshot.SessionID)
	assert.Equal(t, 1.0, snapshot.X)
	assert.Equal(t, 2.0, snapshot.Y)
	assert.Equal(t, 3.0, snapshot.Z)
	assert.Equal(t, 1, snapshot.CoinsCollected)
	assert.Equal(t, 3, snapshot.CoinsAtStart)
}

func TestSaveWorker_CloseStopsCapturingRequests(t *testing.T) {
	repo := session.NewGameRepo()
	defer repo.Close()
	fake := &fakeRepository{}

	worker := NewSaveWorker(NewSaveWorkerOptions{
		Session:    repo,
		Repository: fake,
		QueueSize:  8,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	worker.Close()
	repo.StartSaving()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, fake.count())
}
