// Package export renders an enriched batch to files the dashboard's host
// environment can consume: a CSV sheet and a standalone map page.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/almehdi/jobview/internal/model"
)

var csvHeader = []string{
	"id", "title", "company", "location", "work_style", "status",
	"application_date", "received_date", "link", "logo", "lat", "lng",
}

// WriteCSV writes the batch as CSV, one row per record in batch order.
// Unresolved records leave lat/lng empty.
func WriteCSV(w io.Writer, apps []model.Application) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, app := range apps {
		var lat, lng string
		if app.Coords != nil {
			lat = strconv.FormatFloat(app.Coords.Lat, 'f', -1, 64)
			lng = strconv.FormatFloat(app.Coords.Lng, 'f', -1, 64)
		}
		row := []string{
			app.ID, app.Title, app.Company, app.Location, app.WorkStyle,
			app.Status, app.AppliedAt.Raw, app.ReceivedAt.Raw, app.Link,
			app.LogoURL, lat, lng,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", app.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
