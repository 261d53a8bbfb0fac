package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/calafel/hopper/pkg/repositories/models"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(ctx context.Context, path string, migrations string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	dir, err := os.ReadDir(migrations)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %v", err)
	}

	for _, entry := range dir {
		if entry.IsDir() {
			continue
		}

		migrationPath := filepath.Join(migrations, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return nil, fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	q := `
	INSERT INTO snapshots (id, session_id, created_at, x, y, z, coins_collected, coins_at_start)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, q,
		snapshot.ID.String(),
		snapshot.SessionID.String(),
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

func (r *SQLiteRepository) LoadLatestSnapshot(ctx context.Context, sessionID uuid.UUID) (*models.Snapshot, error) {
	q := `
	SELECT id, created_at, x, y, z, coins_collected, coins_at_start
	FROM snapshots WHERE session_id = ?
	ORDER BY created_at DESC LIMIT 1;
	`
	snapshot := &models.Snapshot{
		SessionID: sessionID,
	}
	var id string
	err := r.db.QueryRowContext(ctx, q, sessionID.String()).Scan(
		&id,
		&snapshot.CreatedAt,
		&snapshot.X,
		&snapshot.Y,
		&snapshot.Z,
		&snapshot.CoinsCollected,
		&snapshot.CoinsAtStart,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan snapshot: %v", err)
	}

	snapshot.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot id: %v", err)
	}

	return snapshot, nil
}

func (r *SQLiteRepository) ListSnapshots(ctx context.Context, sessionID uuid.UUID) ([]*models.Snapshot, error) {
	q := `
	SELECT id, created_at, x, y, z, coins_collected, coins_at_start
	FROM snapshots WHERE session_id = ?
	ORDER BY created_at ASC;
	`
	rows, err := r.db.QueryContext(ctx, q, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %v", err)
	}
	defer rows.Close()

	var snapshots []*models.Snapshot
	for rows.Next() {
		snapshot := &models.Snapshot{
			SessionID: sessionID,
		}
		var id string
		if err := rows.Scan(
			&id,
			&snapshot.CreatedAt,
			&snapshot.X,
			&snapshot.Y,
			&snapshot.Z,
			&snapshot.CoinsCollected,
			&snapshot.CoinsAtStart,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %v", err)
		}
		snapshot.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot id: %v", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %v", err)
	}

	return snapshots, nil
}
