package lookup

import (
	"context"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"

	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

// Searcher finds games by title.
type Searcher interface {
	Search(ctx context.Context, title string) ([]Game, error)
}

// Comparison pairs one rated record with its best search match.
type Comparison struct {
	Title        string   `json:"title"`
	Year         *int     `json:"year,omitempty"`
	Platform     string   `json:"platform,omitempty"`
	YourRating   float64  `json:"your_rating"`
	MatchName    string   `json:"match_name,omitempty"`
	MatchYear    *int     `json:"match_year,omitempty"`
	Exact        bool     `json:"exact"`
	PublicRating *float64 `json:"public_rating,omitempty"`
	Delta        *float64 `json:"delta,omitempty"`
	Err          string   `json:"error,omitempty"`
}

// Compare looks up the first n rated records (all when n <= 0) and pairs each
// with a search result. Per-title failures are recorded on the row; only
// context cancellation aborts the run. records are not modified.
func Compare(ctx context.Context, s Searcher, records []votes.Record, n int) ([]Comparison, error) {
	rated := votes.Rated(records)
	if n > 0 && n < len(rated) {
		rated = rated[:n]
	}
	out := make([]Comparison, 0, len(rated))
	for _, r := range rated {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		row := Comparison{Title: r.Title, Year: r.Year, YourRating: *r.Rating}
		if r.Platform != nil {
			row.Platform = *r.Platform
		}
		games, err := s.Search(ctx, r.Title)
		if err != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			row.Err = err.Error()
			out = append(out, row)
			continue
		}
		alt := ""
		if r.AltTitle != nil {
			alt = *r.AltTitle
		}
		g, exact, ok := BestMatch(games, r.Title, alt)
		if !ok {
			row.Err = "no match"
			out = append(out, row)
			continue
		}
		row.MatchName = g.Name
		row.MatchYear = g.ReleaseYear()
		row.Exact = exact
		row.PublicRating = g.Rating5()
		if row.PublicRating != nil {
			d := row.YourRating - *row.PublicRating
			row.Delta = &d
		}
		out = append(out, row)
	}
	return out, nil
}

// BestMatch prefers a game whose folded name equals a folded title and falls
// back to the first result.
func BestMatch(games []Game, titles ...string) (Game, bool, bool) {
	if len(games) == 0 {
		return Game{}, false, false
	}
	for _, t := range titles {
		ft := Fold(t)
		if ft == "" {
			continue
		}
		for _, g := range games {
			if Fold(g.Name) == ft {
				return g, true, true
			}
		}
	}
	return games[0], false, true
}

// Fold transliterates to ASCII, lowercases and reduces punctuation to single
// spaces so titles compare loosely.
func Fold(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}

// MeanDelta averages Delta over rows that have one.
func MeanDelta(rows []Comparison) (float64, int) {
	var sum float64
	n := 0
	for _, r := range rows {
		if r.Delta != nil {
			sum += *r.Delta
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
