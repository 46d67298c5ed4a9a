package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/KaramelBytes/ratelens-cli/internal/utils"
)

const sqliteFileName = "ratelens.db"

// SQLRepository keeps the snapshot in a single-row table.
type SQLRepository struct {
	db      *sql.DB
	numeric bool // $1 placeholders instead of ?
}

// NewSQLite opens (or creates) the sqlite database at path.
func NewSQLite(ctx context.Context, path string) (*SQLRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := utils.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("sqlite: ensure dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	r := &SQLRepository{db: db}
	if err := r.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return r, nil
}

// NewPostgres connects to dsn, retrying the first ping a few times.
func NewPostgres(ctx context.Context, dsn string) (*SQLRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	for i := 0; i < 5; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("postgres: ping: %w", ctx.Err())
		case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
		}
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}
	r := &SQLRepository{db: db, numeric: true}
	if err := r.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return r, nil
}

func (r *SQLRepository) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ratelens_snapshot (
			slot     INTEGER PRIMARY KEY,
			id       TEXT NOT NULL,
			name     TEXT NOT NULL DEFAULT '',
			body     TEXT NOT NULL,
			saved_at TEXT NOT NULL
		)`)
	return err
}

// bind rewrites ? placeholders for drivers that want $n.
func (r *SQLRepository) bind(q string) string {
	if !r.numeric {
		return q
	}
	var b strings.Builder
	n := 0
	for _, c := range q {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func (r *SQLRepository) Load(ctx context.Context) (Snapshot, bool, error) {
	var s Snapshot
	var saved string
	err := r.db.QueryRowContext(ctx, `SELECT id, name, body, saved_at FROM ratelens_snapshot WHERE slot = 1`).
		Scan(&s.ID, &s.Name, &s.Text, &saved)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	if t, perr := time.Parse(time.RFC3339Nano, saved); perr == nil {
		s.SavedAt = t
	}
	return s, true, nil
}

func (r *SQLRepository) Save(ctx context.Context, name, text string) error {
	q := r.bind(`
		INSERT INTO ratelens_snapshot (slot, id, name, body, saved_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			id = excluded.id, name = excluded.name, body = excluded.body, saved_at = excluded.saved_at`)
	_, err := r.db.ExecContext(ctx, q, uuid.NewString(), name, text, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *SQLRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM ratelens_snapshot`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

func (r *SQLRepository) Close() error { return r.db.Close() }

// sqlitePath picks an explicit dsn path or the default file inside dir.
func sqlitePath(dir, dsn string) string {
	if dsn != "" {
		return dsn
	}
	return filepath.Join(dir, sqliteFileName)
}
