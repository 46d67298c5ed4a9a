package votes_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/ratelens-cli/internal/parser"
	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

func TestNormalizeKnownRow(t *testing.T) {
	tbl := parser.Table{
		Headers: []string{"id", "titel", "jaar", "alternatieve titel", "platform", "stem", "geplaatst"},
		Rows:    [][]string{{"7", "Chrono Trigger", "1995", "", "Super Nintendo", "4.5", "1998-03-02"}},
	}
	recs := votes.Normalize(tbl, votes.DefaultOptions())
	require.Len(t, recs, 1)
	r := recs[0]

	require.NotNil(t, r.ID)
	assert.Equal(t, 7, *r.ID)
	assert.Equal(t, "Chrono Trigger", r.Title)
	require.NotNil(t, r.Year)
	assert.Equal(t, 1995, *r.Year)
	assert.Nil(t, r.AltTitle)
	require.NotNil(t, r.Platform)
	assert.Equal(t, "Super Nintendo", *r.Platform)
	require.NotNil(t, r.Rating)
	assert.Equal(t, 4.5, *r.Rating)
	require.NotNil(t, r.Placed)
	assert.True(t, r.Placed.Equal(time.Date(1998, 3, 2, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, tbl.Rows[0], r.Raw)
}

func TestNormalizeHeaderLookupIsCaseInsensitive(t *testing.T) {
	tbl := parser.Table{
		Headers: []string{"  STEM ", "Titel", "GAMESMETER ID"},
		Rows:    [][]string{{"3,5", "Ico", "42"}},
	}
	r := votes.Normalize(tbl, votes.DefaultOptions())[0]
	require.NotNil(t, r.Rating)
	assert.Equal(t, 3.5, *r.Rating)
	assert.Equal(t, "Ico", r.Title)
	require.NotNil(t, r.ID)
	assert.Equal(t, 42, *r.ID)
}

func TestNormalizeMissingColumnsAndShortRows(t *testing.T) {
	tbl := parser.Table{
		Headers: []string{"titel", "jaar", "platform", "stem"},
		Rows: [][]string{
			{},
			{"Tetris"},
			{"", "abc", "  ", "n/a", "extra"},
		},
	}
	recs := votes.Normalize(tbl, votes.DefaultOptions())
	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.Nil(t, r.ID)
		assert.Nil(t, r.Year)
		assert.Nil(t, r.Platform)
		assert.Nil(t, r.Rating)
		assert.Nil(t, r.Placed)
		assert.Nil(t, r.AltTitle)
	}
	assert.Equal(t, votes.UnknownTitle, recs[0].Title)
	assert.Equal(t, "Tetris", recs[1].Title)
	assert.Equal(t, votes.UnknownTitle, recs[2].Title)
}

func TestNormalizeKeepsTitleCellVerbatim(t *testing.T) {
	tbl := parser.Table{
		Headers: []string{"titel", "alternatieve titel"},
		Rows:    [][]string{{"  Zelda ", "  "}, {"   ", " Link "}},
	}
	recs := votes.Normalize(tbl, votes.DefaultOptions())
	require.Len(t, recs, 2)
	assert.Equal(t, "  Zelda ", recs[0].Title)
	assert.Nil(t, recs[0].AltTitle)
	assert.Equal(t, "   ", recs[1].Title)
	require.NotNil(t, recs[1].AltTitle)
	assert.Equal(t, "Link", *recs[1].AltTitle)
}

func TestRecordCloneIsDeep(t *testing.T) {
	tbl := parser.Table{
		Headers: []string{"GamesMeter id", "titel", "jaar", "alternatieve titel", "platform", "stem", "geplaatst"},
		Rows:    [][]string{{"7", "Chrono Trigger", "1995", "Kurono", "SNES", "4.5", "1998-03-02"}},
	}
	orig := votes.Normalize(tbl, votes.DefaultOptions())
	c := votes.CloneAll(orig)
	*c[0].ID, *c[0].Year, *c[0].Rating = 1, 1, 1
	*c[0].AltTitle, *c[0].Platform = "x", "x"
	*c[0].Placed = time.Time{}
	c[0].Raw[1] = "x"

	r := orig[0]
	assert.Equal(t, 7, *r.ID)
	assert.Equal(t, 1995, *r.Year)
	assert.Equal(t, 4.5, *r.Rating)
	assert.Equal(t, "Kurono", *r.AltTitle)
	assert.Equal(t, "SNES", *r.Platform)
	assert.False(t, r.Placed.IsZero())
	assert.Equal(t, "Chrono Trigger", r.Raw[1])
	assert.Nil(t, votes.CloneAll(nil))
}

func TestNormalizeCustomColumns(t *testing.T) {
	tbl := parser.Table{
		Headers: []string{"Name", "Score"},
		Rows:    [][]string{{"Portal", "5"}},
	}
	opt := votes.DefaultOptions()
	opt.Columns = votes.Columns{Title: []string{"name"}, Rating: []string{"score"}}
	r := votes.Normalize(tbl, opt)[0]
	assert.Equal(t, "Portal", r.Title)
	require.NotNil(t, r.Rating)
	assert.Equal(t, 5.0, *r.Rating)
}

func TestNormalizePreservesOrder(t *testing.T) {
	tbl := parser.Table{Headers: []string{"titel"}, Rows: [][]string{{"a"}, {"b"}, {"c"}}}
	recs := votes.Normalize(tbl, votes.DefaultOptions())
	assert.Equal(t, []string{"a", "b", "c"}, []string{recs[0].Title, recs[1].Title, recs[2].Title})
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"4.5", ptr(4.5)},
		{" 3,5 ", ptr(3.5)},
		{"5", ptr(5)},
		{"", nil},
		{"   ", nil},
		{"abc", nil},
		{"Inf", nil},
		{"NaN", nil},
		{"1,2,3", nil},
	}
	for _, c := range cases {
		got := votes.ParseNumber(c.in)
		if c.want == nil {
			assert.Nil(t, got, c.in)
			continue
		}
		require.NotNil(t, got, c.in)
		assert.Equal(t, *c.want, *got, c.in)
	}
}

func TestParseIntRejectsFractions(t *testing.T) {
	assert.Nil(t, votes.ParseInt("1995.5"))
	require.NotNil(t, votes.ParseInt("1995"))
	assert.Equal(t, 1995, *votes.ParseInt("1995"))
}

func TestParsePlaced(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		in   string
		want *time.Time
	}{
		{"1998-03-02", tptr(time.Date(1998, 3, 2, 0, 0, 0, 0, loc))},
		{"2021-12-31 23:59", tptr(time.Date(2021, 12, 31, 23, 59, 0, 0, loc))},
		{"2021-12-31T08:15:42", tptr(time.Date(2021, 12, 31, 8, 15, 42, 0, loc))},
		{" 2020-02-29 ", tptr(time.Date(2020, 2, 29, 0, 0, 0, 0, loc))},
		{"2021-02-29", nil},
		{"2021-13-01", nil},
		{"2021-00-10", nil},
		{"2021-01-01 24:00", nil},
		{"01-02-2021", nil},
		{"2021-01-01 10", nil},
		{"", nil},
	}
	for _, c := range cases {
		got := votes.ParsePlaced(c.in, loc)
		if c.want == nil {
			assert.Nil(t, got, c.in)
			continue
		}
		require.NotNil(t, got, c.in)
		assert.True(t, c.want.Equal(*got), "%s: got %v", c.in, got)
	}
}

func TestRatedAndPlatformName(t *testing.T) {
	empty := ""
	ps := "PS1"
	recs := []votes.Record{
		{Title: "a", Rating: ptr(3)},
		{Title: "b"},
		{Title: "c", Rating: ptr(4), Platform: &empty},
		{Title: "d", Rating: ptr(2), Platform: &ps},
	}
	rated := votes.Rated(recs)
	require.Len(t, rated, 3)
	assert.Equal(t, "Unknown", rated[0].PlatformName("Unknown"))
	assert.Equal(t, "Unknown", rated[1].PlatformName("Unknown"))
	assert.Equal(t, "PS1", rated[2].PlatformName("Unknown"))
}

func ptr(f float64) *float64 { return &f }

func tptr(t time.Time) *time.Time { return &t }
