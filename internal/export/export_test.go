package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/almehdi/jobview/internal/model"
)

func sampleBatch() []model.Application {
	return []model.Application{
		{
			ID:        "acme/1",
			Title:     "Dev",
			Company:   "Acme",
			Location:  "Paris",
			Status:    "applied",
			AppliedAt: model.DateField{Raw: "2025-04-01"},
			Coords:    &model.Coordinates{Lat: 48.85, Lng: 2.35},
		},
		{
			ID:       "acme/2",
			Title:    "SRE",
			Company:  "Acme",
			Location: "Atlantis",
			Status:   "applied",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleBatch()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[0][10] != "lat" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][10] != "48.85" || rows[1][11] != "2.35" {
		t.Errorf("resolved row lat/lng = %q/%q", rows[1][10], rows[1][11])
	}
	if rows[2][10] != "" || rows[2][11] != "" {
		t.Errorf("unresolved row should have empty lat/lng, got %q/%q", rows[2][10], rows[2][11])
	}
}

func TestWriteMapHTML_OnlyResolvedRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMapHTML(&buf, sampleBatch()); err != nil {
		t.Fatalf("WriteMapHTML: %v", err)
	}

	page := buf.String()
	if !strings.Contains(page, `"lat":48.85`) {
		t.Error("resolved marker missing from page")
	}
	if strings.Contains(page, "Atlantis") {
		t.Error("unresolved record should not appear on the map")
	}
	if !strings.Contains(page, "tile.openstreetmap.org") {
		t.Error("missing tile layer")
	}
}

func TestWriteMapHTML_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMapHTML(&buf, nil); err != nil {
		t.Fatalf("WriteMapHTML: %v", err)
	}
	if !strings.Contains(buf.String(), "const markers = []") {
		t.Error("expected empty marker array")
	}
}
