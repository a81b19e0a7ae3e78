package rbook

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/radiobridge/radiobridge/pkg/band"
	"github.com/radiobridge/radiobridge/pkg/normalize"
)

// Acquire runs the full strategy chain for a scope with a fresh session
// client.
func Acquire(ctx context.Context, scope Scope, opts ...Option) (*Result, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	return NewClient(&scope, opts...).Acquire(ctx, scope)
}

// Acquire produces a complete-as-possible Result for the scope:
// PRIMARY_ATTEMPT (bulk export) -> FALLBACK_ATTEMPT (structural scrape)
// -> optional DETAIL_PASS. A session whose detail pass partially failed
// is still a successful acquisition; callers inspect the per-record
// markers.
func (c *Client) Acquire(ctx context.Context, scope Scope) (*Result, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	result := &Result{SessionID: c.sessionID, Scope: scope}
	c.logger.Info("Starting acquisition", "scope", scope.Describe(), "bands", band.Describe(scope.Bands), "session", c.sessionID)

	records, err := c.runStrategy(ctx, ProvenancePrimary, func() ([]Record, error) {
		return c.fetchExport(ctx, &scope)
	})
	if err != nil {
		result.Attempts = append(result.Attempts, Attempt{Strategy: ProvenancePrimary, Err: err})
		c.logger.Warn("Bulk export unavailable, falling back to structural scrape", "error", err)

		records, err = c.runStrategy(ctx, ProvenanceFallback, func() ([]Record, error) {
			return c.fetchScrape(ctx, &scope)
		})
		if err != nil {
			result.Attempts = append(result.Attempts, Attempt{Strategy: ProvenanceFallback, Err: err})
			return nil, &AcquisitionError{Scope: scope.Describe(), Attempts: result.Attempts}
		}
		result.Provenance = ProvenanceFallback
	} else {
		result.Provenance = ProvenancePrimary
	}

	records, dropped := c.normalizeRecords(records)
	records = filterByBand(records, scope.Bands)
	records = dedupe(records)
	result.Dropped = dropped

	if scope.Detail {
		records = c.detailPass(ctx, &scope, records)
	}

	result.Records = records
	c.logger.Info("Acquisition complete",
		"records", len(records),
		"provenance", result.Provenance,
		"dropped", dropped,
		"partial_failures", result.PartialFailures(),
	)
	return result, nil
}

// runStrategy wraps one strategy attempt in a span.
func (c *Client) runStrategy(ctx context.Context, strategy Provenance, fn func() ([]Record, error)) ([]Record, error) {
	_, span := c.tracer.Start(ctx, "rbook.acquire."+string(strategy))
	defer span.End()

	records, err := fn()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

// normalizeRecords applies the field normalizer uniformly to whatever
// strategy produced the records. Records whose frequency cannot be parsed
// are dropped with a logged reason, never propagated.
func (c *Client) normalizeRecords(records []Record) ([]Record, int) {
	out := records[:0]
	dropped := 0
	for _, rec := range records {
		freq, mhz, ok := normalize.Frequency(rec.Frequency)
		if !ok {
			c.logger.Warn("Dropping record with unparseable frequency",
				"frequency", rec.Frequency, "callsign", rec.Callsign, "location", rec.Location)
			dropped++
			continue
		}
		rec.Frequency = freq
		rec.frequencyMHz = mhz
		rec.Offset = normalize.Offset(rec.Offset)
		rec.Tone = normalize.Tone(rec.Tone)
		rec.ToneUp = normalize.Tone(rec.ToneUp)
		rec.ToneDown = normalize.Tone(rec.ToneDown)
		out = append(out, rec)
	}
	return out, dropped
}

// filterByBand keeps records inside the selected bands, preserving order.
func filterByBand(records []Record, bands []string) []Record {
	out := records[:0]
	for _, rec := range records {
		if band.Matches(rec.frequencyMHz, bands) {
			out = append(out, rec)
		}
	}
	return out
}

// dedupe removes natural-key duplicates, keeping the first occurrence so
// source order is preserved.
func dedupe(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	out := records[:0]
	for _, rec := range records {
		key := (&rec).Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}
