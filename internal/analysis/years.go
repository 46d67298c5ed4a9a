package analysis

import (
	"sort"

	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

// TopGamesPerYear is how many records a YearSummary keeps.
const TopGamesPerYear = 3

// YearSummary aggregates the rated records of one release year.
type YearSummary struct {
	Year     int            `json:"year"`
	Count    int            `json:"count"`
	Average  float64        `json:"average"`
	Median   float64        `json:"median"`
	Min      float64        `json:"min"`
	Max      float64        `json:"max"`
	TopGames []votes.Record `json:"top_games"`
}

// BuildYearSummaries groups records having both a year and a rating by
// release year. The result is sorted by year, newest first. TopGames holds
// the best rated records of the year; ties keep input order.
func BuildYearSummaries(records []votes.Record) []YearSummary {
	groups := map[int][]votes.Record{}
	var order []int
	for _, r := range records {
		if r.Year == nil || r.Rating == nil {
			continue
		}
		y := *r.Year
		if _, ok := groups[y]; !ok {
			order = append(order, y)
		}
		groups[y] = append(groups[y], r)
	}

	out := make([]YearSummary, 0, len(order))
	for _, y := range order {
		recs := groups[y]
		ratings := make([]float64, len(recs))
		for i, r := range recs {
			ratings[i] = *r.Rating
		}
		lo, hi := minMax(ratings)

		top := append([]votes.Record(nil), recs...)
		sort.SliceStable(top, func(i, j int) bool { return *top[i].Rating > *top[j].Rating })
		if len(top) > TopGamesPerYear {
			top = top[:TopGamesPerYear]
		}

		out = append(out, YearSummary{
			Year:     y,
			Count:    len(recs),
			Average:  mean(ratings),
			Median:   median(ratings),
			Min:      lo,
			Max:      hi,
			TopGames: top,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// HighestRatedYears returns up to limit years with at least minCount rated
// records, best average first.
func HighestRatedYears(years []YearSummary, minCount, limit int) []YearSummary {
	out := make([]YearSummary, 0, len(years))
	for _, y := range years {
		if y.Count >= minCount {
			out = append(out, y)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Average > out[j].Average })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
