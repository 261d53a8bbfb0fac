package repositories

import (
	"context"
	"fmt"

	"github.com/calafel/hopper/pkg/repositories/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresRepository struct {
	conn *pgx.Conn
}

// NewPostgresRepository connects to the database and ensures the
// snapshots table exists. The caller is responsible for calling
// Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	q := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id UUID PRIMARY KEY,
		session_id UUID NOT NULL,
		created_at BIGINT NOT NULL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		z DOUBLE PRECISION NOT NULL,
		coins_collected INTEGER NOT NULL,
		coins_at_start INTEGER NOT NULL
	);
	`
	if _, err := conn.Exec(ctx, q); err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %v", err)
	}

	return &PostgresRepository{
		conn: conn,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	return r.conn.Close(ctx)
}

func (r *PostgresRepository) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	q := `
	INSERT INTO snapshots (id, session_id, created_at, x, y, z, coins_collected, coins_at_start)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.conn.Exec(ctx, q,
		snapshot.ID,
		snapshot.SessionID,
		snapshot.CreatedAt,
		snapshot.X,
		snapshot.Y,
		snapshot.Z,
		snapshot.CoinsCollected,
		snapshot.CoinsAtStart,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %v", err)
	}

	return nil
}

func (r *PostgresRepository) LoadLatestSnapshot(ctx context.Context, sessionID uuid.UUID) (*models.Snapshot, error) {
	q := `
	SELECT id, created_at, x, y, z, coins_collected, coins_at_start
	FROM snapshots WHERE session_id = $1
	ORDER BY created_at DESC LIMIT 1;
	`
	snapshot := &models.Snapshot{
		SessionID: sessionID,
	}
	err := r.conn.QueryRow(ctx, q, sessionID).Scan(
		&snapshot.ID,
		&snapshot.CreatedAt,
		&snapshot.X,
		&snapshot.Y,
		&snapshot.Z,
		&snapshot.CoinsCollected,
		&snapshot.CoinsAtStart,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan snapshot: %v", err)
	}

	return snapshot, nil
}

func (r *PostgresRepository) ListSnapshots(ctx context.Context, sessionID uuid.UUID) ([]*models.Snapshot, error) {
	q := `
	SELECT id, created_at, x, y, z, coins_collected, coins_at_start
	FROM snapshots WHERE session_id = $1
	ORDER BY created_at ASC;
	`
	rows, err := r.conn.Query(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %v", err)
	}
	defer rows.Close()

	var snapshots []*models.Snapshot
	for rows.Next() {
		snapshot := &models.Snapshot{
			SessionID: sessionID,
		}
		if err := rows.Scan(
			&snapshot.ID,
			&snapshot.CreatedAt,
			&snapshot.X,
			&snapshot.Y,
			&snapshot.Z,
			&snapshot.CoinsCollected,
			&snapshot.CoinsAtStart,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %v", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %v", err)
	}

	return snapshots, nil
}
