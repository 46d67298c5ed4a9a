package analysis

import (
	"time"

	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

type rec struct {
	title    string
	year     int
	rating   float64
	platform string
	placed   string
}

// build turns compact fixtures into records. Zero year or rating means
// missing; an empty platform stays nil unless it is "-" which becomes "".
func build(rs ...rec) []votes.Record {
	out := make([]votes.Record, 0, len(rs))
	for _, r := range rs {
		v := votes.Record{Title: r.title}
		if r.year != 0 {
			y := r.year
			v.Year = &y
		}
		if r.rating != 0 {
			f := r.rating
			v.Rating = &f
		}
		switch r.platform {
		case "":
		case "-":
			empty := ""
			v.Platform = &empty
		default:
			p := r.platform
			v.Platform = &p
		}
		if r.placed != "" {
			v.Placed = votes.ParsePlaced(r.placed, time.UTC)
		}
		out = append(out, v)
	}
	return out
}
