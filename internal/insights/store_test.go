package insights

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/ratelens-cli/internal/analysis"
	"github.com/KaramelBytes/ratelens-cli/internal/cache"
	"github.com/KaramelBytes/ratelens-cli/internal/i18n"
	"github.com/KaramelBytes/ratelens-cli/internal/utils"
)

const sampleCSV = "GamesMeter id,titel,jaar,alternatieve titel,platform,stem,geplaatst\n" +
	"7,Chrono Trigger,1995,,Super Nintendo,\"4,5\",1998-03-02\n" +
	"8,\"Final Fantasy VII, \"\"International\"\" Edition\",1997,,PlayStation,5,1999-01-10 12:30\n" +
	"9,Secret of Mana,1993,,Super Nintendo,4,\n" +
	"10,Unrated,1996,,,,\n"

// memRepo is an in-memory cache.Repository with injectable failures.
type memRepo struct {
	snap     cache.Snapshot
	has      bool
	saves    int
	saveErr  error
	loadErr  error
	clearErr error
}

func (m *memRepo) Load(context.Context) (cache.Snapshot, bool, error) {
	if m.loadErr != nil {
		return cache.Snapshot{}, false, m.loadErr
	}
	return m.snap, m.has, nil
}

func (m *memRepo) Save(_ context.Context, name, text string) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap, m.has = cache.Snapshot{Name: name, Text: text}, true
	return nil
}

func (m *memRepo) Clear(context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.snap, m.has = cache.Snapshot{}, false
	return nil
}

func (m *memRepo) Close() error { return nil }

func TestNewStoreIsEmpty(t *testing.T) {
	s := New(nil, Options{})
	assert.Equal(t, StatusEmpty, s.Status())
	assert.Empty(t, s.FileName())
	assert.Zero(t, s.Len())
	assert.NotNil(t, s.Records())
	assert.Equal(t, 0, s.Stats().Total)
	assert.Len(t, s.Stats().RatingBuckets, 10)
	assert.Equal(t, analysis.DirectionFlat, s.Trend().Direction)
	assert.NotEmpty(t, s.Profile().Title)
}

func TestLoadTextReadyAndPersisted(t *testing.T) {
	repo := &memRepo{}
	s := New(repo, Options{})
	require.NoError(t, s.LoadText(context.Background(), sampleCSV, "votes.csv"))

	assert.Equal(t, StatusReady, s.Status())
	assert.Equal(t, "votes.csv", s.FileName())
	assert.Nil(t, s.Err())
	require.Equal(t, 4, s.Len())

	recs := s.Records()
	assert.Equal(t, "Final Fantasy VII, \"International\" Edition", recs[1].Title)
	require.NotNil(t, recs[0].Rating)
	assert.Equal(t, 4.5, *recs[0].Rating)

	assert.Equal(t, 3, s.Stats().RatedCount)
	assert.Equal(t, "Super Nintendo", s.PlatformPeaks()[0].Name)
	assert.Equal(t, 2, s.Activity().Placed)

	assert.True(t, repo.has)
	assert.Equal(t, "votes.csv", repo.snap.Name)
	assert.Equal(t, sampleCSV, repo.snap.Text)
}

func TestLoadTextIdempotent(t *testing.T) {
	s := New(nil, Options{})
	ctx := context.Background()
	require.NoError(t, s.LoadText(ctx, sampleCSV, "a.csv"))
	recs1, years1, stats1, trend1, prof1 := s.Records(), s.YearSummaries(), s.Stats(), s.Trend(), s.Profile()

	require.NoError(t, s.LoadText(ctx, sampleCSV, "a.csv"))
	assert.Equal(t, recs1, s.Records())
	assert.Equal(t, years1, s.YearSummaries())
	assert.Equal(t, stats1, s.Stats())
	assert.Equal(t, trend1, s.Trend())
	assert.Equal(t, prof1, s.Profile())
}

func TestLoadTextInvalidUTF8MovesToError(t *testing.T) {
	s := New(nil, Options{})
	ctx := context.Background()
	require.NoError(t, s.LoadText(ctx, sampleCSV, "good.csv"))

	err := s.LoadText(ctx, "titel\n\xff\xfe\n", "bad.csv")
	require.Error(t, err)
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "bad.csv", le.Name)
	assert.True(t, errors.Is(err, ErrInvalidEncoding))

	assert.Equal(t, StatusError, s.Status())
	assert.Zero(t, s.Len(), "previous dataset is dropped")
	assert.Empty(t, s.FileName())
	assert.Equal(t, err, s.Err())
	assert.Zero(t, s.Stats().Total)

	require.NoError(t, s.LoadText(ctx, sampleCSV, "again.csv"))
	assert.Equal(t, StatusReady, s.Status())
	assert.Nil(t, s.Err())
}

func TestLoadTextFailedSaveIsOnlyLogged(t *testing.T) {
	var buf bytes.Buffer
	repo := &memRepo{saveErr: errors.New("disk full")}
	s := New(repo, Options{Logger: utils.NewLoggerTo(&buf, false)})
	require.NoError(t, s.LoadText(context.Background(), sampleCSV, "votes.csv"))
	assert.Equal(t, StatusReady, s.Status())
	assert.Equal(t, 1, repo.saves)
	assert.Contains(t, buf.String(), "disk full")
}

func TestLoadTextEmptyInputIsReady(t *testing.T) {
	s := New(nil, Options{})
	require.NoError(t, s.LoadText(context.Background(), "", "empty.csv"))
	assert.Equal(t, StatusReady, s.Status())
	assert.Zero(t, s.Len())
}

func TestRestore(t *testing.T) {
	repo := &memRepo{snap: cache.Snapshot{Name: "old.csv", Text: sampleCSV}, has: true}
	s := New(repo, Options{})
	ok, err := s.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, StatusReady, s.Status())
	assert.Equal(t, "old.csv", s.FileName())
	assert.Equal(t, 4, s.Len())
	assert.Zero(t, repo.saves, "restore does not write back")
}

func TestRestoreUsesLocalizedFallbackName(t *testing.T) {
	nl, _ := i18n.Lookup("nl")
	repo := &memRepo{snap: cache.Snapshot{Text: sampleCSV}, has: true}
	s := New(repo, Options{Phrasebook: nl})
	ok, err := s.Restore(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, nl.T("file.cached", nil), s.FileName())
}

func TestRestoreNothingCached(t *testing.T) {
	ok, err := New(nil, Options{}).Restore(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)

	s := New(&memRepo{}, Options{})
	ok, err = s.Restore(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, StatusEmpty, s.Status())

	s = New(&memRepo{snap: cache.Snapshot{Name: "blank.csv"}, has: true}, Options{})
	ok, err = s.Restore(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRestoreFailuresLeaveStoreUnchanged(t *testing.T) {
	s := New(&memRepo{loadErr: errors.New("locked")}, Options{})
	ok, err := s.Restore(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, StatusEmpty, s.Status())

	s = New(&memRepo{snap: cache.Snapshot{Name: "bin", Text: "\xff"}, has: true}, Options{})
	ok, err = s.Restore(context.Background())
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrInvalidEncoding))
	assert.Equal(t, StatusEmpty, s.Status())
}

func TestReset(t *testing.T) {
	repo := &memRepo{}
	s := New(repo, Options{})
	ctx := context.Background()
	require.NoError(t, s.LoadText(ctx, sampleCSV, "votes.csv"))
	require.NoError(t, s.Reset(ctx))
	assert.Equal(t, StatusEmpty, s.Status())
	assert.Zero(t, s.Len())
	assert.Empty(t, s.FileName())
	assert.False(t, repo.has)

	repo.clearErr = errors.New("permission denied")
	require.NoError(t, s.LoadText(ctx, sampleCSV, "votes.csv"))
	err := s.Reset(ctx)
	assert.Error(t, err)
	assert.Equal(t, StatusEmpty, s.Status(), "memory is reset even when the cache is not")
}

func TestViewsFollowVersion(t *testing.T) {
	s := New(nil, Options{})
	ctx := context.Background()
	v0 := s.Version()
	require.NoError(t, s.LoadText(ctx, sampleCSV, "a.csv"))
	assert.Greater(t, s.Version(), v0)
	assert.Equal(t, 3, s.Stats().RatedCount)

	require.NoError(t, s.LoadText(ctx, "titel,stem\nOnly,2\n", "b.csv"))
	assert.Equal(t, 1, s.Stats().RatedCount, "memoized stats are rebuilt after a new load")
	assert.Empty(t, s.YearSummaries())
}

func TestRecordsReturnsCopy(t *testing.T) {
	s := New(nil, Options{})
	require.NoError(t, s.LoadText(context.Background(), sampleCSV, "a.csv"))
	recs := s.Records()
	recs[0].Title = "changed"
	assert.Equal(t, "Chrono Trigger", s.Records()[0].Title)
}

func TestRecordsAreDeepCopies(t *testing.T) {
	s := New(nil, Options{})
	require.NoError(t, s.LoadText(context.Background(), "titel,jaar,stem\nA,2000,4\nB,2000,2\n", "a.csv"))
	before := s.Stats().Average

	recs := s.Records()
	*recs[0].Rating = 1
	*recs[0].Year = 1980
	recs[0].Raw[0] = "mutated"

	again := s.Records()
	assert.Equal(t, 4.0, *again[0].Rating)
	assert.Equal(t, 2000, *again[0].Year)
	assert.Equal(t, "A", again[0].Raw[0])
	assert.Equal(t, before, s.Stats().Average)

	s2 := New(nil, Options{})
	require.NoError(t, s2.LoadText(context.Background(), "titel,jaar,stem\nA,2000,4\nB,2000,2\n", "a.csv"))
	assert.Equal(t, s2.Stats(), s.Stats())
}

func TestViewsDoNotAliasStore(t *testing.T) {
	s := New(nil, Options{})
	require.NoError(t, s.LoadText(context.Background(), sampleCSV, "a.csv"))

	years := s.YearSummaries()
	*years[0].TopGames[0].Rating = 0.5
	years[0].TopGames[0].Raw[1] = "mutated"
	stats := s.Stats()
	*stats.FirstYear = 1900
	stats.RatingBuckets[0].Count = 99
	prof := s.Profile()
	prof.Traits[0] = "mutated"
	act := s.Activity()
	*act.First.Rating = 0.5
	act.Months[5] = 99

	assert.Equal(t, 5.0, *s.YearSummaries()[0].TopGames[0].Rating)
	assert.Equal(t, "Final Fantasy VII, \"International\" Edition", s.YearSummaries()[0].TopGames[0].Raw[1])
	assert.Equal(t, 1993, *s.Stats().FirstYear)
	assert.Equal(t, 0, s.Stats().RatingBuckets[0].Count)
	assert.NotEqual(t, "mutated", s.Profile().Traits[0])
	assert.Equal(t, 4.5, *s.Activity().First.Rating)
	assert.Equal(t, 0, s.Activity().Months[5])
	assert.Equal(t, 5.0, *s.Records()[1].Rating)
}

func TestUnknownPlatformLabel(t *testing.T) {
	nl, _ := i18n.Lookup("nl")
	csv := "titel,platform,stem\nA,,3\n"

	s := New(nil, Options{Phrasebook: nl})
	require.NoError(t, s.LoadText(context.Background(), csv, "a.csv"))
	assert.Equal(t, "Onbekend", s.Stats().PlatformCounts[0].Name)

	s = New(nil, Options{UnknownPlatform: "???"})
	require.NoError(t, s.LoadText(context.Background(), csv, "a.csv"))
	assert.Equal(t, "???", s.PlatformPeaks()[0].Name)
}

func TestReportUsesCurrentDataset(t *testing.T) {
	s := New(nil, Options{})
	require.NoError(t, s.LoadText(context.Background(), sampleCSV, "votes.csv"))
	r := s.Report()
	assert.Equal(t, "votes.csv", r.Name)
	assert.Equal(t, 4, r.Records)
	assert.Equal(t, s.TrendSummary(), r.TrendSummary)
	assert.Contains(t, r.Markdown(analysis.SectionOverview), "Records: 4 (rated 3)")
}
