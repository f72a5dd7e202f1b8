// Package resolve orchestrates location resolution over a batch of
// applications: partition pre-resolved records, geocode the distinct
// remaining locations serially under the rate limit, and reattach results.
package resolve

import (
	"context"
	"log/slog"
	"strings"

	"github.com/almehdi/jobview/internal/geo"
	"github.com/almehdi/jobview/internal/geocode"
	"github.com/almehdi/jobview/internal/model"
	"github.com/almehdi/jobview/internal/ratelimit"
)

// Pipeline owns one batch's worth of resolution work. The cache it builds
// lives for a single Run call.
type Pipeline struct {
	geocoder       geocode.Geocoder
	limiter        *ratelimit.Limiter
	retryTransport bool
	logger         *slog.Logger
}

// NewPipeline wires a pipeline. When retryTransport is true, a lookup that
// fails at the transport level is attempted once more, still under the
// limiter's spacing; a clean "no match" answer is never retried.
func NewPipeline(geocoder geocode.Geocoder, limiter *ratelimit.Limiter, retryTransport bool, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		geocoder:       geocoder,
		limiter:        limiter,
		retryTransport: retryTransport,
		logger:         logger,
	}
}

// Result is one pipeline run's output: the full enriched batch (unresolved
// records keep their place, without coordinates) and the run statistics.
type Result struct {
	Applications []model.Application
	Stats        model.ResolutionStats
}

// Run enriches the batch with coordinates. The input slice is not mutated;
// the returned slice preserves input order and length. Run returns an error
// only on context cancellation — per-record failures are folded into the
// stats.
func (p *Pipeline) Run(ctx context.Context, batch []model.Application) (Result, error) {
	out := make([]model.Application, len(batch))
	copy(out, batch)

	stats := model.ResolutionStats{Total: len(batch)}

	// Partition: records with valid coordinates skip geocoding entirely.
	var needsGeocoding []int
	for i := range out {
		if coords, ok := geo.Validate(out[i].RawLat, out[i].RawLng); ok {
			c := coords
			out[i].Coords = &c
			stats.PreResolved++
			continue
		}
		needsGeocoding = append(needsGeocoding, i)
	}

	// Distinct non-empty locations among the remainder, in first-seen order.
	cache := newRunCache()
	var distinct []string
	for _, i := range needsGeocoding {
		location := out[i].Location
		if strings.TrimSpace(location) == "" {
			continue
		}
		if _, seen := cache.get(location); seen {
			continue
		}
		cache.set(location, geocode.Outcome{Status: geocode.NoMatch})
		distinct = append(distinct, location)
	}

	p.logger.Debug("resolution plan",
		"total", stats.Total,
		"pre_resolved", stats.PreResolved,
		"distinct_lookups", len(distinct),
	)

	// Serial lookups, one per distinct location, spaced by the limiter.
	for _, location := range distinct {
		outcome, err := p.lookup(ctx, location)
		if err != nil {
			return Result{}, err
		}
		cache.set(location, outcome)
		if outcome.Status == geocode.Resolved {
			p.logger.Debug("resolved", "location", location, "lat", outcome.Coords.Lat, "lng", outcome.Coords.Lng)
		} else {
			p.logger.Debug("unresolved", "location", location, "error", outcome.Err)
		}
	}

	// Reattach cached results. Empty locations count as failed without ever
	// reaching the geocoder.
	for _, i := range needsGeocoding {
		if strings.TrimSpace(out[i].Location) == "" {
			stats.Failed++
			continue
		}
		outcome, _ := cache.get(out[i].Location)
		if outcome.Status == geocode.Resolved && outcome.Coords != nil {
			c := *outcome.Coords
			out[i].Coords = &c
			stats.NewlyResolved++
		} else {
			stats.Failed++
		}
	}

	return Result{Applications: out, Stats: stats}, nil
}

// lookup issues one rate-limited lookup, with at most one extra attempt for
// transport failures.
func (p *Pipeline) lookup(ctx context.Context, location string) (geocode.Outcome, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return geocode.Outcome{}, err
	}
	outcome := p.geocoder.Lookup(ctx, location)

	if outcome.Status == geocode.TransportError && p.retryTransport {
		if ctx.Err() != nil {
			return geocode.Outcome{}, ctx.Err()
		}
		p.logger.Warn("lookup failed, retrying once", "location", location, "error", outcome.Err)
		if err := p.limiter.Wait(ctx); err != nil {
			return geocode.Outcome{}, err
		}
		outcome = p.geocoder.Lookup(ctx, location)
	}

	if ctx.Err() != nil {
		return geocode.Outcome{}, ctx.Err()
	}
	return outcome, nil
}

// MapReady filters a batch down to the records that carry coordinates.
// Everything else stays in the batch for table and chart views but is
// excluded from map rendering.
func MapReady(apps []model.Application) []model.Application {
	var out []model.Application
	for _, app := range apps {
		if app.Coords != nil {
			out = append(out, app)
		}
	}
	return out
}
