package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/almehdi/jobview/internal/model"
)

// DefaultStatus is attached to records whose export omits a status.
const DefaultStatus = "applied"

// flatRecord is Format A: one element of the flat array export, with fields
// matching the table columns directly.
type flatRecord struct {
	Title      string         `json:"title"`
	Company    string         `json:"company"`
	Location   string         `json:"location"`
	WorkStyle  string         `json:"work_style"`
	Status     string         `json:"status"`
	StatusTime string         `json:"status_time"`
	Link       string         `json:"link"`
	Logo       string         `json:"logo"`
	Lat        model.Flexible `json:"lat"`
	Lng        model.Flexible `json:"lng"`
}

// nestedRecord is Format B: one leaf of the company → application-key tree
// produced by the email scraper.
type nestedRecord struct {
	JobTitle        string         `json:"job_title"`
	CompanyName     string         `json:"company_name"`
	Location        string         `json:"location"`
	WorkType        string         `json:"work_type"`
	Status          string         `json:"status"`
	ApplicationDate string         `json:"application_date"`
	CompanyLogo     string         `json:"company_logo"`
	EmailDate       string         `json:"email_date"`
	LastUpdated     string         `json:"last_updated"`
	Lat             model.Flexible `json:"lat"`
	Lng             model.Flexible `json:"lng"`
}

// Parse converts a raw export into canonical Application records.
// Two shapes are recognized: a flat array (Format A) and a nested mapping of
// company key → application key → fields (Format B). Anything else fails
// with *model.FormatError.
//
// Output order follows input iteration order: array order for Format A; for
// Format B, company keys then application keys in lexical order, since JSON
// objects carry no order of their own.
func Parse(data []byte) ([]model.Application, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, &model.FormatError{Reason: "empty input"}
	}

	switch trimmed[0] {
	case '[':
		return parseFlat(trimmed)
	case '{':
		return ParseNested(trimmed)
	default:
		return nil, &model.FormatError{Reason: "top-level value is neither an array nor an object"}
	}
}

func parseFlat(data []byte) ([]model.Application, error) {
	var records []flatRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &model.FormatError{Reason: fmt.Sprintf("flat array: %v", err)}
	}

	apps := make([]model.Application, 0, len(records))
	for i, r := range records {
		status := r.Status
		if status == "" {
			status = DefaultStatus
		}
		apps = append(apps, model.Application{
			ID:        fmt.Sprintf("#%d", i),
			Title:     r.Title,
			Company:   r.Company,
			Location:  r.Location,
			WorkStyle: r.WorkStyle,
			Status:    status,
			AppliedAt: parseDate(r.StatusTime),
			LogoURL:   r.Logo,
			Link:      r.Link,
			RawLat:    r.Lat,
			RawLng:    r.Lng,
		})
	}
	return apps, nil
}

// ParseNested flattens the Format B tree. Exposed separately because the
// remote store serves exactly this shape.
func ParseNested(data []byte) ([]model.Application, error) {
	var companies map[string]json.RawMessage
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, &model.FormatError{Reason: fmt.Sprintf("top-level object: %v", err)}
	}

	companyKeys := make([]string, 0, len(companies))
	for key := range companies {
		companyKeys = append(companyKeys, key)
	}
	sort.Strings(companyKeys)

	var apps []model.Application
	for _, companyKey := range companyKeys {
		var entries map[string]nestedRecord
		if err := json.Unmarshal(companies[companyKey], &entries); err != nil {
			return nil, &model.FormatError{
				Reason: fmt.Sprintf("company %q does not contain application entries: %v", companyKey, err),
			}
		}

		appKeys := make([]string, 0, len(entries))
		for key := range entries {
			appKeys = append(appKeys, key)
		}
		sort.Strings(appKeys)

		for _, appKey := range appKeys {
			r := entries[appKey]
			status := r.Status
			if status == "" {
				status = DefaultStatus
			}
			apps = append(apps, model.Application{
				ID:         companyKey + "/" + appKey,
				Title:      r.JobTitle,
				Company:    r.CompanyName,
				Location:   r.Location,
				WorkStyle:  r.WorkType,
				Status:     status,
				AppliedAt:  parseDate(r.ApplicationDate),
				ReceivedAt: parseDate(r.EmailDate),
				LogoURL:    r.CompanyLogo,
				Link:       "",
				RawLat:     r.Lat,
				RawLng:     r.Lng,
			})
		}
	}
	return apps, nil
}
