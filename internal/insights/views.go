package insights

import (
	"github.com/KaramelBytes/ratelens-cli/internal/analysis"
)

// memo holds one derived value and the dataset version it was built for.
type memo[T any] struct {
	version uint64
	ok      bool
	value   T
}

func (m *memo[T]) get(version uint64, build func() T) T {
	if !m.ok || m.version != version {
		m.value = build()
		m.version = version
		m.ok = true
	}
	return m.value
}

// The lowercase helpers expect s.mu to be held.

func (s *Store) yearSummaries() []analysis.YearSummary {
	return s.years.get(s.version, func() []analysis.YearSummary { return analysis.BuildYearSummaries(s.records) })
}

func (s *Store) generalStats() analysis.GeneralStats {
	return s.stats.get(s.version, func() analysis.GeneralStats {
		return analysis.BuildGeneralStats(s.records, s.UnknownPlatform())
	})
}

func (s *Store) trendInsight() analysis.TrendInsight {
	return s.trend.get(s.version, func() analysis.TrendInsight { return analysis.BuildTrendInsight(s.yearSummaries()) })
}

func (s *Store) gamerProfile() analysis.GamerProfile {
	return s.profile.get(s.version, func() analysis.GamerProfile {
		return analysis.BuildGamerProfile(s.generalStats(), s.trendInsight(), s.yearSummaries(), s.opt.Phrasebook)
	})
}

func (s *Store) platformPeaks() []analysis.PlatformPeak {
	return s.platforms.get(s.version, func() []analysis.PlatformPeak {
		return analysis.BuildPlatformPeaks(s.records, s.UnknownPlatform())
	})
}

func (s *Store) activityView() analysis.Activity {
	return s.activity.get(s.version, func() analysis.Activity { return analysis.BuildActivity(s.records) })
}

// Public views return deep copies of the memoized values.

// YearSummaries returns per-year aggregates, newest year first.
func (s *Store) YearSummaries() []analysis.YearSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analysis.CloneYears(s.yearSummaries())
}

// Stats returns the overall statistics of the rated records.
func (s *Store) Stats() analysis.GeneralStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generalStats().Clone()
}

// Trend returns the yearly average trend.
func (s *Store) Trend() analysis.TrendInsight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trendInsight().Clone()
}

// TrendSummary is the phrased narrative of the current trend.
func (s *Store) TrendSummary() string {
	return s.opt.Phrasebook.T(s.Trend().Summary, nil)
}

// Profile returns the gamer profile in the store's language.
func (s *Store) Profile() analysis.GamerProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gamerProfile().Clone()
}

// PlatformPeaks returns per-platform counts and averages, most rated first.
func (s *Store) PlatformPeaks() []analysis.PlatformPeak {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analysis.ClonePeaks(s.platformPeaks())
}

// HighestRatedYears lists up to three years with at least three rated games,
// best average first.
func (s *Store) HighestRatedYears() []analysis.YearSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analysis.CloneYears(analysis.HighestRatedYears(s.yearSummaries(), analysis.BestYearMinCount, analysis.HighestRatedLimit))
}

// Activity returns when ratings were placed.
func (s *Store) Activity() analysis.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activityView().Clone()
}

// Report bundles every view of the current dataset.
func (s *Store) Report() *analysis.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analysis.NewReport(s.name, len(s.records), s.generalStats().Clone(), analysis.CloneYears(s.yearSummaries()),
		analysis.ClonePeaks(s.platformPeaks()), s.trendInsight().Clone(), s.gamerProfile().Clone(),
		s.activityView().Clone(), s.opt.Phrasebook)
}
