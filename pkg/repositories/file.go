package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/calafel/hopper/pkg/repositories/models"
	"github.com/calafel/hopper/pkg/savefile"
	"github.com/google/uuid"
)

const saveFileExtension = ".save"

// FileRepository stores one compressed save file per snapshot under
// dir/<session-id>/.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) (Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %v", err)
	}
	return &FileRepository{
		dir: dir,
	}, nil
}

func (r *FileRepository) Close(ctx context.Context) error {
	return nil
}

func (r *FileRepository) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	sessionDir := filepath.Join(r.dir, snapshot.SessionID.String())
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %v", err)
	}

	data, err := savefile.Encode(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %v", err)
	}

	// The timestamp prefix keeps lexical and chronological order in
	// agreement.
	name := fmt.Sprintf("%020d-%s%s", snapshot.CreatedAt, snapshot.ID, saveFileExtension)
	path := filepath.Join(sessionDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write save file: %v", err)
	}

	return nil
}

func (r *FileRepository) LoadLatestSnapshot(ctx context.Context, sessionID uuid.UUID) (*models.Snapshot, error) {
	names, err := r.saveFileNames(sessionID)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, &ErrNotFound{}
	}

	path := filepath.Join(r.dir, sessionID.String(), names[len(names)-1])
	return r.readSnapshot(path)
}

func (r *FileRepository) ListSnapshots(ctx context.Context, sessionID uuid.UUID) ([]*models.Snapshot, error) {
	names, err := r.saveFileNames(sessionID)
	if err != nil {
		return nil, err
	}

	var snapshots []*models.Snapshot
	for _, name := range names {
		snapshot, err := r.readSnapshot(filepath.Join(r.dir, sessionID.String(), name))
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

func (r *FileRepository) saveFileNames(sessionID uuid.UUID) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.dir, sessionID.String()))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session directory: %v", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), saveFileExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

func (r *FileRepository) readSnapshot(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %v", err)
	}
	snapshot, err := savefile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode save file %s: %v", path, err)
	}
	return snapshot, nil
}
