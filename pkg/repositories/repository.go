package repositories

import (
	"context"

	"github.com/calafel/hopper/pkg/repositories/models"
	"github.com/google/uuid"
)

// Repository persists session save snapshots.
type Repository interface {
	Close(ctx context.Context) error
	SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error
	// LoadLatestSnapshot returns the most recent snapshot for the
	// session, or ErrNotFound when none has been saved.
	LoadLatestSnapshot(ctx context.Context, sessionID uuid.UUID) (*models.Snapshot, error)
	ListSnapshots(ctx context.Context, sessionID uuid.UUID) ([]*models.Snapshot, error)
}
