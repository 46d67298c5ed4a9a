package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

// Rating scale covered by the histogram.
const (
	RatingMin  = 0.5
	RatingMax  = 5.0
	RatingStep = 0.5
)

// DefaultUnknownPlatform labels records without a platform.
const DefaultUnknownPlatform = "Unknown"

// GeneralStats describes every rated record in the dataset.
type GeneralStats struct {
	Total          int             `json:"total"`
	RatedCount     int             `json:"rated_count"`
	Average        float64         `json:"average"`
	Median         float64         `json:"median"`
	StdDev         float64         `json:"std_dev"`
	Min            float64         `json:"min"`
	Max            float64         `json:"max"`
	FirstYear      *int            `json:"first_year"`
	LastYear       *int            `json:"last_year"`
	PlatformCounts []CategoryCount `json:"platform_counts"`
	RatingBuckets  []Bucket        `json:"rating_buckets"`
}

// CategoryCount is a label with the number of records carrying it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Bucket is one fixed-width bin of the rating histogram.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// BuildGeneralStats aggregates all rated records. Records without a rating
// are ignored entirely, so Total equals RatedCount. An empty platform is
// counted under unknownPlatform.
func BuildGeneralStats(records []votes.Record, unknownPlatform string) GeneralStats {
	if unknownPlatform == "" {
		unknownPlatform = DefaultUnknownPlatform
	}
	rated := votes.Rated(records)
	ratings := make([]float64, 0, len(rated))
	for _, r := range rated {
		ratings = append(ratings, *r.Rating)
	}

	st := GeneralStats{
		Total:          len(rated),
		RatedCount:     len(rated),
		PlatformCounts: countBy(rated, func(r votes.Record) string { return r.PlatformName(unknownPlatform) }),
		RatingBuckets:  buildBuckets(ratings),
	}
	if len(ratings) == 0 {
		return st
	}
	st.Average = mean(ratings)
	st.Median = median(ratings)
	st.StdDev = stdDev(ratings)
	st.Min, st.Max = minMax(ratings)

	for _, r := range rated {
		if r.Year == nil {
			continue
		}
		y := *r.Year
		if st.FirstYear == nil || y < *st.FirstYear {
			st.FirstYear = intPtr(y)
		}
		if st.LastYear == nil || y > *st.LastYear {
			st.LastYear = intPtr(y)
		}
	}
	return st
}

// BucketIndex returns the histogram bin for a rating, or -1 when it falls
// outside the scale. Halves round up.
func BucketIndex(rating float64) int {
	i := int(math.Floor((rating-RatingMin)/RatingStep + 0.5))
	if i < 0 || i >= bucketCount() {
		return -1
	}
	return i
}

func bucketCount() int {
	return int(math.Round((RatingMax-RatingMin)/RatingStep)) + 1
}

func buildBuckets(ratings []float64) []Bucket {
	n := bucketCount()
	buckets := make([]Bucket, n)
	for i := range buckets {
		buckets[i].Label = fmt.Sprintf("%.1f", RatingMin+float64(i)*RatingStep)
	}
	for _, r := range ratings {
		if i := BucketIndex(r); i >= 0 {
			buckets[i].Count++
		}
	}
	return buckets
}

// countBy tallies keys and sorts by count descending; equal counts keep
// first-seen order.
func countBy(records []votes.Record, key func(votes.Record) string) []CategoryCount {
	pos := map[string]int{}
	out := []CategoryCount{}
	for _, r := range records {
		k := key(r)
		if i, ok := pos[k]; ok {
			out[i].Count++
			continue
		}
		pos[k] = len(out)
		out = append(out, CategoryCount{Name: k, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stdDev is the population standard deviation.
func stdDev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	avg := mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - avg
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)))
}

func minMax(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func intPtr(v int) *int { return &v }
