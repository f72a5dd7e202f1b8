package geo

import (
	"testing"

	"github.com/almehdi/jobview/internal/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		lat    model.Flexible
		lng    model.Flexible
		want   model.Coordinates
		wantOK bool
	}{
		{"numeric in range", "45.0", "2.0", model.Coordinates{Lat: 45, Lng: 2}, true},
		{"string values parse", "45", "2", model.Coordinates{Lat: 45, Lng: 2}, true},
		{"lng out of range", "45.0", "200.0", model.Coordinates{}, false},
		{"lat out of range", "-91", "2", model.Coordinates{}, false},
		{"missing lat", "", "2", model.Coordinates{}, false},
		{"missing both", "", "", model.Coordinates{}, false},
		{"non-numeric", "Paris", "2", model.Coordinates{}, false},
		{"boundary values", "90", "-180", model.Coordinates{Lat: 90, Lng: -180}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Validate(tt.lat, tt.lng)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("coords = %+v, want %+v", got, tt.want)
			}
		})
	}
}
