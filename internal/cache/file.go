package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/ratelens-cli/internal/utils"
)

const snapshotFileName = "dataset.json"

// FileRepository keeps the snapshot as a JSON document in a directory.
type FileRepository struct {
	dir string
}

// NewFileRepository stores the snapshot under dir. Nothing is created until
// the first Save.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Path returns the on-disk location of the snapshot.
func (r *FileRepository) Path() string { return filepath.Join(r.dir, snapshotFileName) }

func (r *FileRepository) Load(_ context.Context) (Snapshot, bool, error) {
	b, err := os.ReadFile(r.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, false, fmt.Errorf("parse snapshot: %w", err)
	}
	return s, true, nil
}

// Save writes the snapshot using atomic write.
func (r *FileRepository) Save(_ context.Context, name, text string) error {
	if r.dir == "" {
		return errors.New("cache directory not set")
	}
	if err := utils.EnsureDir(r.dir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	data, err := utils.PrettyJSON(Snapshot{ID: uuid.NewString(), Name: name, Text: text, SavedAt: time.Now()})
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(r.Path(), data)
}

func (r *FileRepository) Clear(_ context.Context) error {
	if err := os.Remove(r.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

func (r *FileRepository) Close() error { return nil }
