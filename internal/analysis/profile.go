package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/ratelens-cli/internal/i18n"
)

// Generosity tiers.
const (
	Generous = "generous"
	Tough    = "tough"
	Balanced = "balanced"
)

// Consistency tiers.
const (
	Consistent  = "consistent"
	WideRanging = "wide-ranging"
	Selective   = "selective"
)

// Pace tiers.
const (
	Marathon = "marathon"
	Steady   = "steady"
	Curated  = "curated"
)

// Profile thresholds.
const (
	GenerousAverage    = 3.6
	ToughAverage       = 2.6
	ConsistentStdDev   = 0.8
	WideRangingStdDev  = 1.3
	MarathonTotal      = 600
	SteadyTotal        = 250
	BestYearMinCount   = 3
	ProfileTopPlatform = 3
)

// Phrasebook renders a narrative key with named parameters.
type Phrasebook interface {
	T(key string, params map[string]string) string
}

// DecadeAverage is the unweighted mean of the yearly averages in a decade.
type DecadeAverage struct {
	Decade  int     `json:"decade"`
	Average float64 `json:"average"`
}

// ProfileFacts are the categorical and numeric inputs of a GamerProfile.
type ProfileFacts struct {
	Generosity   string         `json:"generosity"`
	Consistency  string         `json:"consistency"`
	Pace         string         `json:"pace"`
	Trend        Direction      `json:"trend"`
	Slope        float64        `json:"slope"`
	Average      float64        `json:"average"`
	StdDev       float64        `json:"std_dev"`
	Total        int            `json:"total"`
	FirstYear    *int           `json:"first_year"`
	LastYear     *int           `json:"last_year"`
	TopPlatforms []string       `json:"top_platforms"`
	RatingMode   string         `json:"rating_mode"`
	BestDecade   *DecadeAverage `json:"best_decade"`
	BestYear     *YearSummary   `json:"best_year"`
	BusiestYear  *YearSummary   `json:"busiest_year"`
}

// GamerProfile is the narrative summary of a rating history.
type GamerProfile struct {
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Lead        string       `json:"lead"`
	Description string       `json:"description"`
	Traits      []string     `json:"traits"`
	Facts       ProfileFacts `json:"facts"`
}

// BuildProfileFacts classifies the dataset with fixed thresholds.
func BuildProfileFacts(stats GeneralStats, trend TrendInsight, years []YearSummary) ProfileFacts {
	f := ProfileFacts{
		Trend:     trend.Direction,
		Slope:     trend.Slope,
		Average:   stats.Average,
		StdDev:    stats.StdDev,
		Total:     stats.Total,
		FirstYear: stats.FirstYear,
		LastYear:  stats.LastYear,
	}
	switch {
	case stats.Average >= GenerousAverage:
		f.Generosity = Generous
	case stats.Average <= ToughAverage:
		f.Generosity = Tough
	default:
		f.Generosity = Balanced
	}
	switch {
	case stats.StdDev <= ConsistentStdDev:
		f.Consistency = Consistent
	case stats.StdDev >= WideRangingStdDev:
		f.Consistency = WideRanging
	default:
		f.Consistency = Selective
	}
	switch {
	case stats.Total >= MarathonTotal:
		f.Pace = Marathon
	case stats.Total >= SteadyTotal:
		f.Pace = Steady
	default:
		f.Pace = Curated
	}

	for i, p := range stats.PlatformCounts {
		if i == ProfileTopPlatform {
			break
		}
		f.TopPlatforms = append(f.TopPlatforms, p.Name)
	}
	f.RatingMode = ratingMode(stats)
	f.BestDecade = bestDecade(years)
	f.BestYear = bestYear(years)
	f.BusiestYear = busiestYear(years)
	return f
}

// ratingMode is the label of the fullest bucket. Ties go to the lowest
// rating. An empty histogram has no mode.
func ratingMode(stats GeneralStats) string {
	best := -1
	for i, b := range stats.RatingBuckets {
		if b.Count == 0 {
			continue
		}
		if best < 0 || b.Count > stats.RatingBuckets[best].Count {
			best = i
		}
	}
	if best < 0 {
		return ""
	}
	return stats.RatingBuckets[best].Label
}

func bestDecade(years []YearSummary) *DecadeAverage {
	type acc struct {
		total float64
		n     int
	}
	sums := map[int]*acc{}
	var order []int
	for _, y := range years {
		d := int(math.Floor(float64(y.Year)/10)) * 10
		a, ok := sums[d]
		if !ok {
			a = &acc{}
			sums[d] = a
			order = append(order, d)
		}
		a.total += y.Average
		a.n++
	}
	var best *DecadeAverage
	for _, d := range order {
		avg := sums[d].total / float64(sums[d].n)
		if best == nil || avg > best.Average {
			best = &DecadeAverage{Decade: d, Average: avg}
		}
	}
	return best
}

func bestYear(years []YearSummary) *YearSummary {
	var best *YearSummary
	for i := range years {
		y := years[i]
		if y.Count < BestYearMinCount {
			continue
		}
		if best == nil || y.Average > best.Average {
			best = &y
		}
	}
	return best
}

func busiestYear(years []YearSummary) *YearSummary {
	var best *YearSummary
	for i := range years {
		y := years[i]
		if best == nil || y.Count > best.Count {
			best = &y
		}
	}
	return best
}

// BuildGamerProfile classifies the dataset and phrases the result with pb.
// A nil pb uses the English catalog.
func BuildGamerProfile(stats GeneralStats, trend TrendInsight, years []YearSummary, pb Phrasebook) GamerProfile {
	if pb == nil {
		pb = i18n.English()
	}
	f := BuildProfileFacts(stats, trend, years)

	generosity := pb.T("tier."+f.Generosity, nil)
	consistency := pb.T("tier."+f.Consistency, nil)
	pace := pb.T("pace."+f.Pace, nil)
	trendNote := pb.T("trendNote."+string(f.Trend), nil)
	na := pb.T("label.na", nil)

	platforms := strings.Join(f.TopPlatforms, ", ")
	firstPlatform := pb.T("label.variedSystems", nil)
	if len(f.TopPlatforms) > 0 {
		firstPlatform = f.TopPlatforms[0]
	}
	mode := f.RatingMode
	if mode == "" {
		mode = na
	}

	parts := []string{
		pb.T("profile.description.base", map[string]string{
			"generosity": strings.ToLower(generosity),
			"total":      strconv.Itoa(f.Total),
			"firstYear":  yearOr(f.FirstYear, na),
			"lastYear":   yearOr(f.LastYear, na),
		}),
		pb.T("profile.description.platforms", map[string]string{"platforms": orDefault(platforms, pb.T("label.multipleSystems", nil))}),
		pb.T("profile.description.mode", map[string]string{"mode": mode}),
	}
	if f.BestDecade != nil {
		parts = append(parts, pb.T("profile.description.decade", map[string]string{"decade": strconv.Itoa(f.BestDecade.Decade)}))
	}
	if f.BestYear != nil {
		parts = append(parts, pb.T("profile.highlight.bestYear", map[string]string{
			"year":    strconv.Itoa(f.BestYear.Year),
			"average": FormatRating(f.BestYear.Average),
		}))
	}
	if f.BusiestYear != nil {
		parts = append(parts, pb.T("profile.highlight.busiestYear", map[string]string{
			"year":  strconv.Itoa(f.BusiestYear.Year),
			"count": strconv.Itoa(f.BusiestYear.Count),
		}))
	}
	parts = append(parts, pb.T("profile.description.closing", map[string]string{
		"platform":  firstPlatform,
		"trendNote": trendNote,
	}))

	return GamerProfile{
		Title:    pb.T("profile.title", map[string]string{"generosity": generosity, "consistency": consistency}),
		Subtitle: pb.T("profile.subtitle", map[string]string{"pace": pace, "trendNote": trendNote}),
		Lead: pb.T("profile.lead", map[string]string{
			"average":     FormatRating(f.Average),
			"stdDev":      fmt.Sprintf("%.2f", f.StdDev),
			"consistency": strings.ToLower(consistency),
		}),
		Description: strings.Join(parts, " "),
		Traits: []string{
			pb.T("profile.trait.generosity", map[string]string{"generosity": generosity}),
			pb.T("profile.trait.consistency", map[string]string{"consistency": consistency}),
			pb.T("profile.trait.platforms", map[string]string{"platforms": orDefault(platforms, pb.T("label.varied", nil))}),
			pb.T("profile.trait.pace", map[string]string{"pace": pace}),
		},
		Facts: f,
	}
}

// FormatRating renders a rating with two decimals.
func FormatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yearOr(y *int, fallback string) string {
	if y == nil {
		return fallback
	}
	return strconv.Itoa(*y)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
