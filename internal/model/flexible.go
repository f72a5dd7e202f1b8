package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Flexible is a JSON scalar that may arrive as a number, a numeric string,
// or null. Exports produced by different scraper versions disagree on how
// lat/lng are encoded, so the importer accepts all three.
type Flexible string

// UnmarshalJSON accepts strings, numbers, and null. Anything else is kept
// as its literal text so validation downstream can reject it.
func (f *Flexible) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = Flexible(s)
		return nil
	}
	*f = Flexible(strings.TrimSpace(string(data)))
	return nil
}

// Float parses the value as a float64. The second return is false when the
// value is empty or not numeric.
func (f Flexible) Float() (float64, bool) {
	raw := strings.TrimSpace(string(f))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsZero reports whether the value is absent.
func (f Flexible) IsZero() bool {
	return strings.TrimSpace(string(f)) == ""
}
