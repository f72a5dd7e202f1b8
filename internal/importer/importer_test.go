package importer

import (
	"errors"
	"testing"

	"github.com/almehdi/jobview/internal/model"
)

const nestedFixture = `{
  "acme": {
    "20250101_090000": {
      "job_title": "Backend Engineer",
      "company_name": "Acme",
      "location": "Paris, France",
      "work_type": "hybrid",
      "application_date": "2025-01-01",
      "email_date": "2025-01-01 09:00:00",
      "lat": 48.8566,
      "lng": "2.3522"
    },
    "20250215_140000": {
      "job_title": "SRE",
      "company_name": "Acme",
      "location": "Lyon",
      "email_date": "2025-02-15 14:00:00"
    }
  },
  "globex": {
    "20250301_100000": {
      "job_title": "Data Engineer",
      "company_name": "Globex",
      "location": "Remote",
      "work_type": "remote",
      "status": "rejected",
      "email_date": "2025-03-01 10:00:00"
    }
  }
}`

func TestParse_NestedShape(t *testing.T) {
	apps, err := Parse([]byte(nestedFixture))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// One output record per leaf entry.
	if len(apps) != 3 {
		t.Fatalf("got %d records, want 3", len(apps))
	}

	// IDs are companyKey/applicationKey and unique.
	seen := map[string]bool{}
	for _, app := range apps {
		if app.ID == "" {
			t.Errorf("record %q has empty ID", app.Title)
		}
		if seen[app.ID] {
			t.Errorf("duplicate ID %q", app.ID)
		}
		seen[app.ID] = true
	}
	if apps[0].ID != "acme/20250101_090000" {
		t.Errorf("first ID = %q", apps[0].ID)
	}

	// Missing status defaults to "applied"; explicit status survives.
	if apps[0].Status != DefaultStatus {
		t.Errorf("apps[0].Status = %q, want %q", apps[0].Status, DefaultStatus)
	}
	if apps[2].Status != "rejected" {
		t.Errorf("apps[2].Status = %q, want rejected", apps[2].Status)
	}

	// Numeric and string lat/lng both survive as raw values.
	if v, ok := apps[0].RawLat.Float(); !ok || v != 48.8566 {
		t.Errorf("RawLat = %v ok=%v", v, ok)
	}
	if v, ok := apps[0].RawLng.Float(); !ok || v != 2.3522 {
		t.Errorf("RawLng = %v ok=%v", v, ok)
	}
}

func TestParse_FlatShape(t *testing.T) {
	input := `[
	  {"title":"Dev","company":"Acme","location":"Paris","work_style":"onsite","status_time":"2025-04-01 08:30:00","link":"https://example.com/1"},
	  {"title":"Ops","company":"Initech","status":"interview"}
	]`

	apps, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("got %d records, want 2", len(apps))
	}
	if apps[0].ID != "#0" || apps[1].ID != "#1" {
		t.Errorf("ordinal IDs = %q, %q", apps[0].ID, apps[1].ID)
	}
	if apps[0].Status != DefaultStatus {
		t.Errorf("default status = %q", apps[0].Status)
	}
	if apps[1].Status != "interview" {
		t.Errorf("explicit status = %q", apps[1].Status)
	}
	if apps[0].AppliedAt.Time == nil {
		t.Error("expected parsed application date")
	}
	if apps[0].Link != "https://example.com/1" {
		t.Errorf("Link = %q", apps[0].Link)
	}
}

func TestParse_UnrecognizedShapeIsFormatError(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"scalar", `42`},
		{"string", `"hello"`},
		{"empty", ``},
		{"object of scalars", `{"last_update": "2025-01-01"}`},
		{"broken json", `[{"title":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			var formatErr *model.FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("err = %v, want *model.FormatError", err)
			}
		})
	}
}

func TestParseDate_FailureKeepsRawText(t *testing.T) {
	field := parseDate("sometime last week")
	if field.Time != nil {
		t.Errorf("expected nil Time, got %v", field.Time)
	}
	if field.Raw != "sometime last week" {
		t.Errorf("Raw = %q", field.Raw)
	}
	if field.SortKey() != 0 {
		t.Errorf("SortKey = %d, want 0", field.SortKey())
	}
}

func TestParseDate_KnownLayouts(t *testing.T) {
	for _, raw := range []string{"2025-05-20 13:45:00", "2025-05-20", "2025-05-20T13:45:00Z"} {
		field := parseDate(raw)
		if field.Time == nil {
			t.Errorf("parseDate(%q): expected parsed time", raw)
		}
	}
}
