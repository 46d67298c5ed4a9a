package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/KaramelBytes/ratelens-cli/internal/votes"
)

// Activity describes when ratings were placed. Months starts at January and
// Weekdays at Sunday.
type Activity struct {
	Placed     int           `json:"placed"`
	First      *votes.Record `json:"first"`
	Last       *votes.Record `json:"last"`
	LongestGap *Gap          `json:"longest_gap"`
	Months     []int         `json:"months"`
	Weekdays   []int         `json:"weekdays"`
	Years      []YearCount   `json:"years"`
}

// Gap is the longest stretch between two consecutive ratings.
type Gap struct {
	Days int       `json:"days"`
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// YearCount is the number of ratings placed in a calendar year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// BuildActivity looks only at records with a rated-on timestamp.
func BuildActivity(records []votes.Record) Activity {
	act := Activity{Months: make([]int, 12), Weekdays: make([]int, 7), Years: []YearCount{}}

	placed := make([]votes.Record, 0, len(records))
	for _, r := range records {
		if r.Placed != nil {
			placed = append(placed, r)
		}
	}
	act.Placed = len(placed)
	if len(placed) == 0 {
		return act
	}
	sort.SliceStable(placed, func(i, j int) bool { return placed[i].Placed.Before(*placed[j].Placed) })

	first, last := placed[0], placed[len(placed)-1]
	act.First, act.Last = &first, &last

	years := map[int]int{}
	var longest time.Duration
	for i, r := range placed {
		t := *r.Placed
		act.Months[int(t.Month())-1]++
		act.Weekdays[int(t.Weekday())]++
		years[t.Year()]++
		if i == 0 {
			continue
		}
		prev := *placed[i-1].Placed
		if d := t.Sub(prev); d > longest {
			longest = d
			act.LongestGap = &Gap{Days: int(math.Round(d.Hours() / 24)), From: prev, To: t}
		}
	}
	for y, n := range years {
		act.Years = append(act.Years, YearCount{Year: y, Count: n})
	}
	sort.Slice(act.Years, func(i, j int) bool { return act.Years[i].Year < act.Years[j].Year })
	return act
}

// BusiestMonth returns the 1-based month with the most ratings, or 0 when
// nothing was placed. Ties go to the earlier month.
func (a Activity) BusiestMonth() int {
	return argMax(a.Months) + 1
}

// BusiestWeekday returns the weekday with the most ratings and false when
// nothing was placed.
func (a Activity) BusiestWeekday() (time.Weekday, bool) {
	i := argMax(a.Weekdays)
	if i < 0 {
		return time.Sunday, false
	}
	return time.Weekday(i), true
}

func argMax(counts []int) int {
	best := -1
	for i, c := range counts {
		if c > 0 && (best < 0 || c > counts[best]) {
			best = i
		}
	}
	return best
}
