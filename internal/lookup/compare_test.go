package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

type fakeSearcher struct {
	results map[string][]Game
	errs    map[string]error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, title string) ([]Game, error) {
	f.queries = append(f.queries, title)
	if err := f.errs[title]; err != nil {
		return nil, err
	}
	return f.results[title], nil
}

func vote(title string, r float64) votes.Record {
	return votes.Record{Title: title, Rating: &r}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "pokemon red", Fold("Pokémon: Red!"))
	assert.Equal(t, "final fantasy vii", Fold("  FINAL FANTASY  VII "))
	assert.Equal(t, "", Fold("?!"))
}

func TestBestMatch(t *testing.T) {
	games := []Game{{Name: "Zelda II"}, {Name: "The Legend of Zelda"}}
	g, exact, ok := BestMatch(games, "the legend of zelda")
	require.True(t, ok)
	assert.True(t, exact)
	assert.Equal(t, "The Legend of Zelda", g.Name)

	g, exact, ok = BestMatch(games, "Unrelated", "")
	require.True(t, ok)
	assert.False(t, exact)
	assert.Equal(t, "Zelda II", g.Name)

	_, _, ok = BestMatch(nil, "x")
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	alt := "Pokémon Red"
	recs := []votes.Record{
		{Title: "Pocket Monsters Aka", AltTitle: &alt, Rating: func() *float64 { v := 4.0; return &v }()},
		{Title: "Unrated"},
		vote("Broken", 3),
		vote("Nothing", 2),
		vote("Skipped", 5),
	}
	before := append([]votes.Record(nil), recs...)
	f := &fakeSearcher{
		results: map[string][]Game{
			"Pocket Monsters Aka": {{Name: "Pokemon Blue", AggregatedRating: rating(80)}, {Name: "Pokemon Red", AggregatedRating: rating(70)}},
		},
		errs: map[string]error{"Broken": errors.New("boom")},
	}

	rows, err := Compare(context.Background(), f, recs, 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Pocket Monsters Aka", "Broken", "Nothing"}, f.queries)

	assert.Equal(t, "Pokemon Red", rows[0].MatchName)
	assert.True(t, rows[0].Exact)
	require.NotNil(t, rows[0].PublicRating)
	assert.InDelta(t, 3.5, *rows[0].PublicRating, 1e-9)
	require.NotNil(t, rows[0].Delta)
	assert.InDelta(t, 0.5, *rows[0].Delta, 1e-9)

	assert.Equal(t, "boom", rows[1].Err)
	assert.Equal(t, "no match", rows[2].Err)

	assert.Equal(t, before, recs, "records are not modified")

	mean, n := MeanDelta(rows)
	assert.Equal(t, 1, n)
	assert.InDelta(t, 0.5, mean, 1e-9)
}

func TestCompareStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows, err := Compare(ctx, &fakeSearcher{}, []votes.Record{vote("a", 1)}, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rows)
}

func TestMeanDeltaEmpty(t *testing.T) {
	mean, n := MeanDelta(nil)
	assert.Zero(t, mean)
	assert.Zero(t, n)
}
