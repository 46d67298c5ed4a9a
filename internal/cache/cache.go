// Package cache persists the last loaded dataset so it survives restarts.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Snapshot is the raw text of one loaded file with its display name.
type Snapshot struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Text    string    `json:"text"`
	SavedAt time.Time `json:"saved_at"`
}

// Repository stores at most one snapshot.
type Repository interface {
	// Load returns the stored snapshot and false when nothing is stored.
	Load(ctx context.Context) (Snapshot, bool, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, name, text string) error
	// Clear removes the stored snapshot. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	Close() error
}

// Open builds the repository for backend. dir is used by the file and sqlite
// backends, dsn by postgres.
func Open(ctx context.Context, backend, dir, dsn string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileRepository(dir), nil
	case BackendSQLite:
		return NewSQLite(ctx, sqlitePath(dir, dsn))
	case BackendPostgres:
		if dsn == "" {
			return nil, errors.New("postgres cache requires cache_dsn")
		}
		return NewPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("%w: %s (use file|sqlite|postgres)", ErrUnknownBackend, backend)
	}
}
