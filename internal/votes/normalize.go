package votes

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/ratelens-cli/internal/parser"
)

// Options controls how table cells are mapped onto records.
type Options struct {
	Columns Columns
	// Location is used to build rated-on timestamps. Nil means time.Local.
	Location *time.Location
}

// DefaultOptions returns the GamesMeter header contract in local time.
func DefaultOptions() Options {
	return Options{Columns: DefaultColumns(), Location: time.Local}
}

// Normalize converts parsed rows into records, preserving row order. Missing
// columns and unparsable cells become nil fields; Normalize never fails.
func Normalize(tbl parser.Table, opt Options) []Record {
	loc := opt.Location
	if loc == nil {
		loc = time.Local
	}
	idx := resolve(tbl.Headers, opt.Columns.withDefaults())

	out := make([]Record, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		cell := func(i int) string {
			if i < 0 || i >= len(row) {
				return ""
			}
			return row[i]
		}
		// the title cell is kept verbatim; only an empty cell falls back
		title := cell(idx.title)
		if title == "" {
			title = UnknownTitle
		}
		raw := make([]string, len(row))
		copy(raw, row)
		out = append(out, Record{
			ID:       ParseInt(cell(idx.id)),
			Title:    title,
			Year:     ParseInt(cell(idx.year)),
			AltTitle: optionalString(cell(idx.altTitle)),
			Platform: optionalString(cell(idx.platform)),
			Rating:   ParseNumber(cell(idx.rating)),
			Placed:   ParsePlaced(cell(idx.placed), loc),
			Raw:      raw,
		})
	}
	return out
}

func optionalString(v string) *string {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	return &s
}

// ParseNumber parses a decimal that may use a comma as decimal separator.
// Empty, non-numeric and non-finite values yield nil.
func ParseNumber(v string) *float64 {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}
	s = strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

// ParseInt parses an integral number using ParseNumber rules. Fractional
// values yield nil.
func ParseInt(v string) *int {
	f := ParseNumber(v)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil
	}
	n := int(*f)
	return &n
}

var placedPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:[ T](\d{2}):(\d{2})(?::(\d{2}))?)?$`)

// ParsePlaced parses "YYYY-MM-DD", optionally followed by " HH:MM" or
// "THH:MM" and an optional ":SS", as a wall-clock time in loc. Values that
// do not name a real calendar moment yield nil.
func ParsePlaced(v string, loc *time.Location) *time.Time {
	m := placedPattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return nil
	}
	num := func(s string) int {
		if s == "" {
			return 0
		}
		n, _ := strconv.Atoi(s)
		return n
	}
	year, month, day := num(m[1]), num(m[2]), num(m[3])
	hour, minute, second := num(m[4]), num(m[5]), num(m[6])
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || second > 59 {
		return nil
	}
	if loc == nil {
		loc = time.Local
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	// time.Date normalizes overflow such as Feb 30; reject it instead.
	if t.Day() != day || t.Month() != time.Month(month) {
		return nil
	}
	return &t
}
