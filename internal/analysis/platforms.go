package analysis

import (
	"sort"

	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

// PlatformPeak is the number of rated records and their mean rating for one
// platform.
type PlatformPeak struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// BuildPlatformPeaks summarizes rated records per platform, most rated first.
// Equal counts keep first-seen order.
func BuildPlatformPeaks(records []votes.Record, unknownPlatform string) []PlatformPeak {
	if unknownPlatform == "" {
		unknownPlatform = DefaultUnknownPlatform
	}
	pos := map[string]int{}
	sums := []float64{}
	out := []PlatformPeak{}
	for _, r := range votes.Rated(records) {
		name := r.PlatformName(unknownPlatform)
		i, ok := pos[name]
		if !ok {
			i = len(out)
			pos[name] = i
			out = append(out, PlatformPeak{Name: name})
			sums = append(sums, 0)
		}
		out[i].Count++
		sums[i] += *r.Rating
	}
	for i := range out {
		out[i].Average = sums[i] / float64(out[i].Count)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
