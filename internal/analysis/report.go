package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/KaramelBytes/ratelens-cli/internal/i18n"
	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

// Report sections.
const (
	SectionOverview  = "overview"
	SectionYears     = "years"
	SectionPlatforms = "platforms"
	SectionTrend     = "trend"
	SectionProfile   = "profile"
	SectionActivity  = "activity"
	SectionAll       = "all"
)

// Sections lists every concrete section in rendering order.
var Sections = []string{SectionOverview, SectionYears, SectionPlatforms, SectionTrend, SectionProfile, SectionActivity}

// HighestRatedLimit is how many years the highest-rated list keeps.
const HighestRatedLimit = 3

// Options controls how a Report is derived from records.
type Options struct {
	UnknownPlatform string
	Phrasebook      Phrasebook
}

// Report bundles every derived view of one dataset.
type Report struct {
	Name         string         `json:"name"`
	Records      int            `json:"records"`
	Stats        GeneralStats   `json:"stats"`
	Years        []YearSummary  `json:"years"`
	HighestRated []YearSummary  `json:"highest_rated_years"`
	Platforms    []PlatformPeak `json:"platforms"`
	Trend        TrendInsight   `json:"trend"`
	TrendSummary string         `json:"trend_summary"`
	Profile      GamerProfile   `json:"profile"`
	Activity     Activity       `json:"activity"`

	pb Phrasebook
}

// Build derives a full report from records.
func Build(name string, records []votes.Record, opt Options) *Report {
	pb := opt.Phrasebook
	if pb == nil {
		pb = i18n.English()
	}
	years := BuildYearSummaries(records)
	stats := BuildGeneralStats(records, opt.UnknownPlatform)
	trend := BuildTrendInsight(years)
	return NewReport(name, len(records), stats, years, BuildPlatformPeaks(records, opt.UnknownPlatform), trend,
		BuildGamerProfile(stats, trend, years, pb), BuildActivity(records), pb)
}

// NewReport assembles a report from views computed elsewhere.
func NewReport(name string, records int, stats GeneralStats, years []YearSummary, platforms []PlatformPeak,
	trend TrendInsight, profile GamerProfile, activity Activity, pb Phrasebook) *Report {
	if pb == nil {
		pb = i18n.English()
	}
	return &Report{
		Name:         name,
		Records:      records,
		Stats:        stats,
		Years:        years,
		HighestRated: HighestRatedYears(years, BestYearMinCount, HighestRatedLimit),
		Platforms:    platforms,
		Trend:        trend,
		TrendSummary: pb.T(trend.Summary, nil),
		Profile:      profile,
		Activity:     activity,
		pb:           pb,
	}
}

// ExpandSections resolves "all" and validates names.
func ExpandSections(names []string) ([]string, error) {
	if len(names) == 0 {
		return Sections, nil
	}
	var out []string
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == SectionAll {
			return Sections, nil
		}
		known := false
		for _, s := range Sections {
			if s == n {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown section: %s (use %s or all)", n, strings.Join(Sections, "|"))
		}
		out = append(out, n)
	}
	return out, nil
}

// Markdown renders the selected sections as compact text.
func (r *Report) Markdown(sections ...string) string {
	secs, err := ExpandSections(sections)
	if err != nil {
		secs = Sections
	}
	var b strings.Builder
	b.WriteString("[RATING SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Records: %d (rated %d)\n", r.Records, r.Stats.RatedCount))
	for _, s := range secs {
		b.WriteString("\n")
		switch s {
		case SectionOverview:
			r.writeOverview(&b)
		case SectionYears:
			r.writeYears(&b)
		case SectionPlatforms:
			r.writePlatforms(&b)
		case SectionTrend:
			r.writeTrend(&b)
		case SectionProfile:
			r.writeProfile(&b)
		case SectionActivity:
			r.writeActivity(&b)
		}
	}
	return b.String()
}

func (r *Report) writeOverview(b *strings.Builder) {
	st := r.Stats
	na := r.phrase("label.na")
	b.WriteString("[OVERVIEW]\n")
	b.WriteString(fmt.Sprintf("- rated: %d\n", st.RatedCount))
	b.WriteString(fmt.Sprintf("- average %s, median %s, std %s\n", FormatRating(st.Average), FormatRating(st.Median), FormatRating(st.StdDev)))
	b.WriteString(fmt.Sprintf("- min %s, max %s\n", FormatRating(st.Min), FormatRating(st.Max)))
	b.WriteString(fmt.Sprintf("- years: %s to %s\n", yearOr(st.FirstYear, na), yearOr(st.LastYear, na)))
	b.WriteString("- distribution: ")
	for i, bk := range st.RatingBuckets {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%s(%d)", bk.Label, bk.Count))
	}
	b.WriteString("\n")
}

func (r *Report) writeYears(b *strings.Builder) {
	b.WriteString("[YEARS]\n")
	if len(r.Years) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, y := range r.Years {
		b.WriteString(fmt.Sprintf("- %d (n=%d): mean %s, median %s, min %s, max %s", y.Year, y.Count,
			FormatRating(y.Average), FormatRating(y.Median), FormatRating(y.Min), FormatRating(y.Max)))
		if len(y.TopGames) > 0 {
			b.WriteString("; top: ")
			for i, g := range y.TopGames {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(fmt.Sprintf("%s(%s)", g.Title, strconv.FormatFloat(*g.Rating, 'f', -1, 64)))
			}
		}
		b.WriteString("\n")
	}
	if len(r.HighestRated) > 0 {
		b.WriteString("\n[HIGHEST RATED YEARS]\n")
		for _, y := range r.HighestRated {
			b.WriteString(fmt.Sprintf("- %d: %s (n=%d)\n", y.Year, FormatRating(y.Average), y.Count))
		}
	}
}

func (r *Report) writePlatforms(b *strings.Builder) {
	b.WriteString("[PLATFORMS]\n")
	if len(r.Platforms) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, p := range r.Platforms {
		b.WriteString(fmt.Sprintf("- %s: %d rated, mean %s\n", p.Name, p.Count, FormatRating(p.Average)))
	}
}

func (r *Report) writeTrend(b *strings.Builder) {
	b.WriteString("[TREND]\n")
	b.WriteString(fmt.Sprintf("- direction: %s (slope %.3f)\n", r.Trend.Direction, r.Trend.Slope))
	b.WriteString(fmt.Sprintf("- %s\n", r.TrendSummary))
	for _, p := range r.Trend.Points {
		b.WriteString(fmt.Sprintf("  • %d: %s\n", p.Year, FormatRating(p.Value)))
	}
}

func (r *Report) writeProfile(b *strings.Builder) {
	p := r.Profile
	b.WriteString("[PROFILE]\n")
	b.WriteString(p.Title + "\n")
	b.WriteString(p.Subtitle + "\n\n")
	b.WriteString(p.Lead + "\n")
	b.WriteString(p.Description + "\n")
	for _, t := range p.Traits {
		b.WriteString("- " + t + "\n")
	}
}

func (r *Report) writeActivity(b *strings.Builder) {
	a := r.Activity
	b.WriteString("[ACTIVITY]\n")
	if a.Placed == 0 {
		b.WriteString("(no rated-on dates)\n")
		return
	}
	b.WriteString(fmt.Sprintf("- first: %s on %s\n", a.First.Title, a.First.Placed.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("- last: %s on %s\n", a.Last.Title, a.Last.Placed.Format("2006-01-02")))
	if a.LongestGap != nil {
		b.WriteString(fmt.Sprintf("- longest gap: %d days (%s → %s)\n", a.LongestGap.Days,
			a.LongestGap.From.Format("2006-01-02"), a.LongestGap.To.Format("2006-01-02")))
	}
	if m := a.BusiestMonth(); m > 0 {
		b.WriteString(fmt.Sprintf("- busiest month: %s (%d)\n", r.phrase("month."+strconv.Itoa(m)), a.Months[m-1]))
	}
	if d, ok := a.BusiestWeekday(); ok {
		b.WriteString(fmt.Sprintf("- busiest weekday: %s (%d)\n", r.phrase("weekday."+strconv.Itoa(int(d))), a.Weekdays[d]))
	}
	for _, y := range a.Years {
		b.WriteString(fmt.Sprintf("  • %d: %d\n", y.Year, y.Count))
	}
}

// Table renders the selected sections as terminal tables.
func (r *Report) Table(sections ...string) string {
	secs, err := ExpandSections(sections)
	if err != nil {
		secs = Sections
	}
	var out []string
	for _, s := range secs {
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.SetTitle(strings.ToUpper(s))
		switch s {
		case SectionOverview:
			na := r.phrase("label.na")
			t.AppendHeader(table.Row{"Metric", "Value"})
			t.AppendRows([]table.Row{
				{"Records", r.Records},
				{"Rated", r.Stats.RatedCount},
				{"Average", FormatRating(r.Stats.Average)},
				{"Median", FormatRating(r.Stats.Median)},
				{"Std dev", FormatRating(r.Stats.StdDev)},
				{"Min", FormatRating(r.Stats.Min)},
				{"Max", FormatRating(r.Stats.Max)},
				{"First year", yearOr(r.Stats.FirstYear, na)},
				{"Last year", yearOr(r.Stats.LastYear, na)},
			})
			for _, bk := range r.Stats.RatingBuckets {
				t.AppendRow(table.Row{"Rated " + bk.Label, bk.Count})
			}
		case SectionYears:
			t.AppendHeader(table.Row{"Year", "Count", "Average", "Median", "Min", "Max", "Top"})
			for _, y := range r.Years {
				titles := make([]string, 0, len(y.TopGames))
				for _, g := range y.TopGames {
					titles = append(titles, g.Title)
				}
				t.AppendRow(table.Row{y.Year, y.Count, FormatRating(y.Average), FormatRating(y.Median),
					FormatRating(y.Min), FormatRating(y.Max), strings.Join(titles, ", ")})
			}
		case SectionPlatforms:
			t.AppendHeader(table.Row{"Platform", "Count", "Average"})
			for _, p := range r.Platforms {
				t.AppendRow(table.Row{p.Name, p.Count, FormatRating(p.Average)})
			}
		case SectionTrend:
			t.AppendHeader(table.Row{"Year", "Average"})
			for _, p := range r.Trend.Points {
				t.AppendRow(table.Row{p.Year, FormatRating(p.Value)})
			}
			t.AppendFooter(table.Row{string(r.Trend.Direction), fmt.Sprintf("slope %.3f", r.Trend.Slope)})
		case SectionProfile:
			t.AppendHeader(table.Row{"Field", "Value"})
			t.AppendRows([]table.Row{
				{"Title", r.Profile.Title},
				{"Subtitle", r.Profile.Subtitle},
				{"Lead", r.Profile.Lead},
				{"Traits", strings.Join(r.Profile.Traits, "; ")},
			})
		case SectionActivity:
			t.AppendHeader(table.Row{"Month", "Ratings"})
			for i, n := range r.Activity.Months {
				t.AppendRow(table.Row{r.phrase("month." + strconv.Itoa(i+1)), n})
			}
		}
		out = append(out, t.Render())
	}
	return strings.Join(out, "\n\n") + "\n"
}

func (r *Report) phrase(key string) string {
	if r.pb == nil {
		return i18n.English().T(key, nil)
	}
	return r.pb.T(key, nil)
}
