package importer

import (
	"strings"
	"time"

	"github.com/almehdi/jobview/internal/model"
)

// Layouts seen across export versions, most specific first.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
}

// parseDate keeps the original text and attaches a parsed time when one of
// the known layouts matches. A string that parses with no layout is not an
// error; it only loses sortability.
func parseDate(raw string) model.DateField {
	field := model.DateField{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return field
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			field.Time = &t
			return field
		}
	}
	return field
}
