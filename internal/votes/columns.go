package votes

import "strings"

// Columns lists the accepted header names per field. Matching is
// case-insensitive and ignores surrounding whitespace; the first alias present
// in the header row wins.
type Columns struct {
	ID       []string `mapstructure:"id" yaml:"id"`
	Title    []string `mapstructure:"title" yaml:"title"`
	Year     []string `mapstructure:"year" yaml:"year"`
	AltTitle []string `mapstructure:"alt_title" yaml:"alt_title"`
	Platform []string `mapstructure:"platform" yaml:"platform"`
	Rating   []string `mapstructure:"rating" yaml:"rating"`
	Placed   []string `mapstructure:"placed" yaml:"placed"`
}

// DefaultColumns returns the header names used by GamesMeter vote exports.
func DefaultColumns() Columns {
	return Columns{
		ID:       []string{"GamesMeter id", "id"},
		Title:    []string{"titel", "title"},
		Year:     []string{"jaar", "year"},
		AltTitle: []string{"alternatieve titel", "alternative title"},
		Platform: []string{"platform"},
		Rating:   []string{"stem", "vote", "rating"},
		Placed:   []string{"geplaatst", "placed"},
	}
}

// withDefaults fills empty alias lists from DefaultColumns.
func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	pick := func(v, def []string) []string {
		if len(v) == 0 {
			return def
		}
		return v
	}
	return Columns{
		ID:       pick(c.ID, d.ID),
		Title:    pick(c.Title, d.Title),
		Year:     pick(c.Year, d.Year),
		AltTitle: pick(c.AltTitle, d.AltTitle),
		Platform: pick(c.Platform, d.Platform),
		Rating:   pick(c.Rating, d.Rating),
		Placed:   pick(c.Placed, d.Placed),
	}
}

type indices struct {
	id, title, year, altTitle, platform, rating, placed int
}

func resolve(headers []string, c Columns) indices {
	lookup := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		// later duplicates overwrite earlier ones
		lookup[key] = i
	}
	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := lookup[strings.ToLower(strings.TrimSpace(a))]; ok {
				return i
			}
		}
		return -1
	}
	return indices{
		id:       find(c.ID),
		title:    find(c.Title),
		year:     find(c.Year),
		altTitle: find(c.AltTitle),
		platform: find(c.Platform),
		rating:   find(c.Rating),
		placed:   find(c.Placed),
	}
}
