// Package aggregate groups application batches by a selectable dimension
// for charting. All functions are pure and safe to call on every render.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/almehdi/jobview/internal/model"
)

// UnspecifiedKey stands in for records missing the grouping field.
const UnspecifiedKey = "unspecified"

// Dimension selects how records are grouped.
type Dimension string

const (
	ByCompany      Dimension = "company"
	ByWorkStyle    Dimension = "work_style"
	ByLocation     Dimension = "location"
	ByStatus       Dimension = "status"
	ByAppliedDay   Dimension = "applied_day"
	ByReceivedDay  Dimension = "received_day"
	ByReceivedHour Dimension = "received_hour"
)

// Dimensions lists every supported dimension, in display order.
var Dimensions = []Dimension{
	ByCompany, ByWorkStyle, ByLocation, ByStatus,
	ByAppliedDay, ByReceivedDay, ByReceivedHour,
}

// ParseDimension maps a user-supplied name to a Dimension.
func ParseDimension(name string) (Dimension, error) {
	for _, d := range Dimensions {
		if string(d) == name {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dimension %q (one of: %v)", name, Dimensions)
}

// Bucket is one bar of a chart.
type Bucket struct {
	Key   string
	Count int
}

// GroupBy buckets the batch along the given dimension. Count dimensions
// sort by descending count (key ascending on ties, for stable output);
// chronological dimensions sort by bucket time ascending, with the
// "unspecified" bucket last.
func GroupBy(apps []model.Application, dim Dimension) []Bucket {
	counts := map[string]int{}
	order := map[string]int64{} // chronological sort key per bucket

	for _, app := range apps {
		key, sortKey := extractKey(app, dim)
		counts[key]++
		if prev, ok := order[key]; !ok || (sortKey != 0 && (prev == 0 || sortKey < prev)) {
			order[key] = sortKey
		}
	}

	buckets := make([]Bucket, 0, len(counts))
	for key, count := range counts {
		buckets = append(buckets, Bucket{Key: key, Count: count})
	}

	if chronological(dim) {
		sort.Slice(buckets, func(i, j int) bool {
			a, b := order[buckets[i].Key], order[buckets[j].Key]
			if a == 0 || b == 0 {
				// Unparseable dates sink to the end.
				return b == 0 && a != 0
			}
			return a < b
		})
	} else {
		sort.Slice(buckets, func(i, j int) bool {
			if buckets[i].Count != buckets[j].Count {
				return buckets[i].Count > buckets[j].Count
			}
			return buckets[i].Key < buckets[j].Key
		})
	}
	return buckets
}

func chronological(dim Dimension) bool {
	switch dim {
	case ByAppliedDay, ByReceivedDay, ByReceivedHour:
		return true
	}
	return false
}

func extractKey(app model.Application, dim Dimension) (string, int64) {
	switch dim {
	case ByCompany:
		return orUnspecified(app.Company), 0
	case ByWorkStyle:
		return orUnspecified(app.WorkStyle), 0
	case ByLocation:
		return orUnspecified(app.Location), 0
	case ByStatus:
		return orUnspecified(app.Status), 0
	case ByAppliedDay:
		return dayBucket(app.AppliedAt)
	case ByReceivedDay:
		return dayBucket(app.ReceivedAt)
	case ByReceivedHour:
		return hourBucket(app.ReceivedAt)
	}
	return UnspecifiedKey, 0
}

func orUnspecified(value string) string {
	if value == "" {
		return UnspecifiedKey
	}
	return value
}

func dayBucket(d model.DateField) (string, int64) {
	if d.Time == nil {
		return UnspecifiedKey, 0
	}
	day := d.Time.Truncate(24 * time.Hour)
	return d.Time.Format("2006-01-02"), day.Unix()
}

func hourBucket(d model.DateField) (string, int64) {
	if d.Time == nil {
		return UnspecifiedKey, 0
	}
	// Buckets share a sort key by hour-of-day, not by instant.
	return fmt.Sprintf("%02dh", d.Time.Hour()), int64(d.Time.Hour()) + 1
}
