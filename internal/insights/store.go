// Package insights holds the current dataset and the views derived from it.
package insights

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/KaramelBytes/ratelens-cli/internal/analysis"
	"github.com/KaramelBytes/ratelens-cli/internal/cache"
	"github.com/KaramelBytes/ratelens-cli/internal/i18n"
	"github.com/KaramelBytes/ratelens-cli/internal/parser"
	"github.com/KaramelBytes/ratelens-cli/internal/utils"
	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

// Status is the lifecycle state of the dataset.
type Status string

const (
	StatusEmpty Status = "empty"
	StatusReady Status = "ready"
	StatusError Status = "error"
)

// ErrInvalidEncoding rejects input that is not UTF-8 text.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

// LoadError is a failure of the whole parse and normalize pipeline.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("load dataset: %v", e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Options configures a Store.
type Options struct {
	Normalize votes.Options
	// Phrasebook phrases narratives and labels. Defaults to English.
	Phrasebook analysis.Phrasebook
	// UnknownPlatform overrides the phrasebook's unknown-platform label.
	UnknownPlatform string
	Logger          *utils.Logger
}

// Store owns the record sequence. Every load or reset bumps a version and
// derived views are rebuilt lazily for the current version.
type Store struct {
	mu      sync.Mutex
	repo    cache.Repository
	opt     Options
	log     *utils.Logger
	records []votes.Record
	name    string
	status  Status
	lastErr error
	version uint64

	years     memo[[]analysis.YearSummary]
	stats     memo[analysis.GeneralStats]
	trend     memo[analysis.TrendInsight]
	profile   memo[analysis.GamerProfile]
	platforms memo[[]analysis.PlatformPeak]
	activity  memo[analysis.Activity]
}

// New creates an empty store. repo may be nil, in which case nothing is
// persisted or restored.
func New(repo cache.Repository, opt Options) *Store {
	if opt.Phrasebook == nil {
		opt.Phrasebook = i18n.English()
	}
	lg := opt.Logger
	if lg == nil {
		lg = utils.NopLogger()
	}
	return &Store{repo: repo, opt: opt, log: lg, status: StatusEmpty, records: []votes.Record{}}
}

// LoadText parses text and replaces the dataset. A pipeline failure moves the
// store to StatusError and drops the previous records. A successful load is
// saved to the repository; a failed save is only logged.
func (s *Store) LoadText(ctx context.Context, text, name string) error {
	records, err := s.pipeline(text)

	s.mu.Lock()
	s.version++
	if err != nil {
		s.records = []votes.Record{}
		s.name = ""
		s.status = StatusError
		le := &LoadError{Name: name, Err: err}
		s.lastErr = le
		s.mu.Unlock()
		s.log.Error("%v", le)
		return le
	}
	s.records = records
	s.name = name
	s.status = StatusReady
	s.lastErr = nil
	s.mu.Unlock()
	s.log.Debug("loaded %d records from %s", len(records), name)

	if s.repo != nil {
		if err := s.repo.Save(ctx, name, text); err != nil {
			s.log.Warn("unable to cache dataset: %v", err)
		}
	}
	return nil
}

// Restore replays the cached snapshot through the same pipeline. It reports
// false when there is no repository or nothing cached. A snapshot that fails
// to load leaves the store unchanged.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	if s.repo == nil {
		return false, nil
	}
	snap, ok, err := s.repo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("restore cached dataset: %w", err)
	}
	if !ok || snap.Text == "" {
		return false, nil
	}
	records, err := s.pipeline(snap.Text)
	if err != nil {
		return false, &LoadError{Name: snap.Name, Err: err}
	}
	name := snap.Name
	if name == "" {
		name = s.opt.Phrasebook.T("file.cached", nil)
	}

	s.mu.Lock()
	s.version++
	s.records = records
	s.name = name
	s.status = StatusReady
	s.lastErr = nil
	s.mu.Unlock()
	s.log.Debug("restored %d records from cache (%s)", len(records), name)
	return true, nil
}

// Reset empties the store and clears the repository. The in-memory state is
// reset even when clearing the repository fails.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.version++
	s.records = []votes.Record{}
	s.name = ""
	s.status = StatusEmpty
	s.lastErr = nil
	s.mu.Unlock()

	if s.repo == nil {
		return nil
	}
	if err := s.repo.Clear(ctx); err != nil {
		s.log.Warn("unable to clear cached dataset: %v", err)
		return fmt.Errorf("clear cached dataset: %w", err)
	}
	return nil
}

// pipeline runs parse and normalize, turning a panic into an error.
func (s *Store) pipeline(text string) (records []votes.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("pipeline panic: %v", r)
		}
	}()
	if !utf8.ValidString(text) {
		return nil, ErrInvalidEncoding
	}
	return votes.Normalize(parser.Parse(text), s.opt.Normalize), nil
}

// Status returns the current lifecycle state.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// FileName is the display name of the loaded dataset, empty when none.
func (s *Store) FileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Err returns the last load failure while the store is in StatusError.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Version increases on every load, restore and reset.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Records returns a deep copy of the current record sequence.
func (s *Store) Records() []votes.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := votes.CloneAll(s.records)
	if out == nil {
		out = []votes.Record{}
	}
	return out
}

// Len is the number of records in the current dataset.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Phrasebook returns the phrasebook used for narratives.
func (s *Store) Phrasebook() analysis.Phrasebook { return s.opt.Phrasebook }

// UnknownPlatform is the label used for records without a platform.
func (s *Store) UnknownPlatform() string {
	if s.opt.UnknownPlatform != "" {
		return s.opt.UnknownPlatform
	}
	return s.opt.Phrasebook.T("label.platformUnknown", nil)
}
