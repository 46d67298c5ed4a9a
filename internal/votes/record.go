package votes

import "time"

// UnknownTitle is used when a row has no title cell.
const UnknownTitle = "Unknown title"

// Record is one rated game entry taken from a CSV row. Optional fields are
// nil when the source cell is missing, empty or unparsable.
type Record struct {
	ID       *int       `json:"id"`
	Title    string     `json:"title"`
	Year     *int       `json:"year"`
	AltTitle *string    `json:"alt_title"`
	Platform *string    `json:"platform"`
	Rating   *float64   `json:"rating"`
	Placed   *time.Time `json:"placed"`
	Raw      []string   `json:"raw"`
}

// PlatformName returns the platform or fallback when none is set.
func (r Record) PlatformName(fallback string) string {
	if r.Platform == nil || *r.Platform == "" {
		return fallback
	}
	return *r.Platform
}

// Rated returns only the records that carry a rating, in input order.
func Rated(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Rating != nil {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep copy of r. Pointer fields and Raw no longer alias r.
func (r Record) Clone() Record {
	out := r
	out.ID = clonePtr(r.ID)
	out.Year = clonePtr(r.Year)
	out.AltTitle = clonePtr(r.AltTitle)
	out.Platform = clonePtr(r.Platform)
	out.Rating = clonePtr(r.Rating)
	out.Placed = clonePtr(r.Placed)
	if r.Raw != nil {
		out.Raw = append([]string(nil), r.Raw...)
	}
	return out
}

// CloneAll deep-copies every record. A nil input stays nil.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
