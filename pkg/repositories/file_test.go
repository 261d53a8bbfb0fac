package repositories

import (
	"context"
	"testing"

	"github.com/calafel/hopper/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepository(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)
	defer repo.Close(context.Background())

	ctx := context.Background()
	sessionID := uuid.New()

	_, err = repo.LoadLatestSnapshot(ctx, sessionID)
	assert.True(t, IsNotFound(err))

	first := &models.Snapshot{
		ID:             uuid.New(),
		SessionID:      sessionID,
		CreatedAt:      1000,
		X:              1,
		Y:              2,
		Z:              3,
		CoinsCollected: 1,
		CoinsAtStart:   3,
	}
	second := &models.Snapshot{
		ID:             uuid.New(),
		SessionID:      sessionID,
		CreatedAt:      2000,
		X:              4,
		Y:              5,
		Z:              6,
		CoinsCollected: 3,
		CoinsAtStart:   3,
	}
	require.NoError(t, repo.SaveSnapshot(ctx, first))
	require.NoError(t, repo.SaveSnapshot(ctx, second))

	latest, err := repo.LoadLatestSnapshot(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, second, latest)

	snapshots, err := repo.ListSnapshots(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, first, snapshots[0])
	assert.Equal(t, second, snapshots[1])

	// Other sessions are isolated.
	snapshots, err = repo.ListSnapshots(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, snapshots)
}
