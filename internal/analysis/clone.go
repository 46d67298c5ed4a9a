package analysis

import "github.com/KaramelBytes/ratelens-cli/internal/votes"

// Clone returns a copy of y whose TopGames share nothing with y.
func (y YearSummary) Clone() YearSummary {
	y.TopGames = votes.CloneAll(y.TopGames)
	return y
}

// CloneYears deep-copies a year summary list.
func CloneYears(years []YearSummary) []YearSummary {
	if years == nil {
		return nil
	}
	out := make([]YearSummary, len(years))
	for i, y := range years {
		out[i] = y.Clone()
	}
	return out
}

// Clone returns a copy of s with its own year pointers and slices.
func (s GeneralStats) Clone() GeneralStats {
	s.FirstYear = cloneInt(s.FirstYear)
	s.LastYear = cloneInt(s.LastYear)
	s.PlatformCounts = cloneSlice(s.PlatformCounts)
	s.RatingBuckets = cloneSlice(s.RatingBuckets)
	return s
}

// Clone returns a copy of t with its own points.
func (t TrendInsight) Clone() TrendInsight {
	t.Points = cloneSlice(t.Points)
	return t
}

// Clone returns a copy of f sharing no pointers or slices with it.
func (f ProfileFacts) Clone() ProfileFacts {
	f.FirstYear = cloneInt(f.FirstYear)
	f.LastYear = cloneInt(f.LastYear)
	f.TopPlatforms = cloneSlice(f.TopPlatforms)
	if f.BestDecade != nil {
		d := *f.BestDecade
		f.BestDecade = &d
	}
	if f.BestYear != nil {
		y := f.BestYear.Clone()
		f.BestYear = &y
	}
	if f.BusiestYear != nil {
		y := f.BusiestYear.Clone()
		f.BusiestYear = &y
	}
	return f
}

// Clone returns a copy of p sharing no pointers or slices with it.
func (p GamerProfile) Clone() GamerProfile {
	p.Traits = cloneSlice(p.Traits)
	p.Facts = p.Facts.Clone()
	return p
}

// Clone returns a copy of a sharing no pointers or slices with it.
func (a Activity) Clone() Activity {
	if a.First != nil {
		r := a.First.Clone()
		a.First = &r
	}
	if a.Last != nil {
		r := a.Last.Clone()
		a.Last = &r
	}
	if a.LongestGap != nil {
		g := *a.LongestGap
		a.LongestGap = &g
	}
	a.Months = cloneSlice(a.Months)
	a.Weekdays = cloneSlice(a.Weekdays)
	a.Years = cloneSlice(a.Years)
	return a
}

// ClonePeaks copies a platform peak list.
func ClonePeaks(peaks []PlatformPeak) []PlatformPeak {
	return cloneSlice(peaks)
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
