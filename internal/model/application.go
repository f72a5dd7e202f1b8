package model

import "time"

// Application is the unified representation of one job application,
// regardless of which export shape it was imported from.
type Application struct {
	ID         string       // unique within a batch
	Title      string       // job title
	Company    string       // company name
	Location   string       // free-text location, may be empty
	WorkStyle  string       // remote / hybrid / onsite, free text
	Status     string       // application status, defaults to "applied"
	AppliedAt  DateField    // when the application was sent
	ReceivedAt DateField    // when the confirmation email arrived
	LogoURL    string       // company logo, optional
	Link       string       // link back to the posting, optional
	RawLat     Flexible     // latitude as found in the export, unvalidated
	RawLng     Flexible     // longitude as found in the export, unvalidated
	Coords     *Coordinates // nil until the resolution pipeline attaches a result
}

// DateField keeps the original text of a date alongside its parsed value.
// Parse failure leaves Time nil; the raw string is still shown as-is.
type DateField struct {
	Raw  string
	Time *time.Time
}

// SortKey returns a comparable timestamp, or 0 when the date never parsed.
func (d DateField) SortKey() int64 {
	if d.Time == nil {
		return 0
	}
	return d.Time.Unix()
}

// Coordinates is a resolved map position. Absence of coordinates on an
// Application is expressed by a nil pointer, never by a zero value.
type Coordinates struct {
	Lat float64
	Lng float64
}

// ResolutionStats summarizes one resolution pipeline run.
type ResolutionStats struct {
	Total         int // batch size
	PreResolved   int // records that already carried valid coordinates
	NewlyResolved int // records resolved by geocoding during this run
	Failed        int // empty locations plus exhausted lookups
}
