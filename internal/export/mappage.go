package export

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/almehdi/jobview/internal/model"
)

// marker is one map pin, serialized into the page.
type marker struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Location string  `json:"location"`
}

var mapPage = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Application locations</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
const markers = {{.Markers}};
const map = L.map('map').setView([48.8566, 2.3522], 5);
L.tileLayer('https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors'
}).addTo(map);
for (const m of markers) {
  L.marker([m.lat, m.lng])
    .addTo(map)
    .bindPopup('<b>' + m.title + '</b><br>' + m.company + '<br>' + m.location);
}
</script>
</body>
</html>
`))

// WriteMapHTML writes a self-contained map page with one marker per record
// that carries coordinates. Unresolved records are simply not on the map.
func WriteMapHTML(w io.Writer, apps []model.Application) error {
	var markers []marker
	for _, app := range apps {
		if app.Coords == nil {
			continue
		}
		markers = append(markers, marker{
			Lat:      app.Coords.Lat,
			Lng:      app.Coords.Lng,
			Title:    app.Title,
			Company:  app.Company,
			Location: app.Location,
		})
	}

	payload, err := json.Marshal(markers)
	if err != nil {
		return fmt.Errorf("marshal markers: %w", err)
	}
	if markers == nil {
		payload = []byte("[]")
	}

	return mapPage.Execute(w, struct {
		Markers template.JS
	}{Markers: template.JS(payload)})
}
