package resolve

import (
	"strings"

	"github.com/almehdi/jobview/internal/geocode"
)

// runCache deduplicates lookups within a single pipeline run. It is created
// by the run that owns it and discarded with it; nothing persists across
// runs or batches.
type runCache struct {
	entries map[string]geocode.Outcome
}

func newRunCache() *runCache {
	return &runCache{entries: map[string]geocode.Outcome{}}
}

// cacheKey normalizes a location string before keying. Trimming and
// lowercasing means "Paris" and " paris " share one lookup; the displayed
// location keeps its original form.
func cacheKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

func (c *runCache) get(location string) (geocode.Outcome, bool) {
	out, ok := c.entries[cacheKey(location)]
	return out, ok
}

func (c *runCache) set(location string, out geocode.Outcome) {
	c.entries[cacheKey(location)] = out
}
