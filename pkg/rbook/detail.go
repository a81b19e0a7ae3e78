package rbook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

var (
	repeaterIDPattern = regexp.MustCompile(`Repeater ID:\s*(\S+)`)
	gridSquarePattern = regexp.MustCompile(`\b[A-R]{2}\d{2}[a-x]{2}\b`)
	keyValuePattern   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 /-]{0,40}):\s*(.+)$`)
)

// detailSkipKeys are generic labels harvested by the key/value sweep that
// carry no record information.
var detailSkipKeys = map[string]bool{
	"call": true, "date": true, "details": true, "home": true, "menu": true,
}

// detailPass enriches each record with its extended fields, one
// rate-limited request per record. A failed fetch marks that record
// PartialFailure and moves on; cancellation marks the remaining records
// session-aborted and returns what was collected.
func (c *Client) detailPass(ctx context.Context, scope *Scope, records []Record) []Record {
	ctx, span := c.tracer.Start(ctx, "rbook.detail_pass")
	defer span.End()

	if err := c.resolveDetailURLs(ctx, scope, records); err != nil {
		// No link harvest means every record degrades, not the session.
		for i := range records {
			if records[i].detailURL == "" {
				records[i].DetailState = DetailPartialFailure
				records[i].DetailError = fmt.Sprintf("detail link harvest failed: %v", err)
			}
		}
	}

	total := len(records)
	for i := range records {
		rec := &records[i]

		// Idempotent: a record that already completed keeps its fields.
		if rec.DetailState == DetailComplete {
			continue
		}
		if err := ctx.Err(); err != nil {
			c.abortRemaining(records[i:])
			break
		}
		if rec.detailURL == "" {
			if rec.DetailState == DetailNone {
				rec.DetailState = DetailPartialFailure
				rec.DetailError = "no detail link for record"
			}
			continue
		}

		detail, err := c.fetchDetail(ctx, rec.detailURL)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.abortRemaining(records[i:])
				break
			}
			c.logger.Warn("Detail fetch failed", "url", rec.detailURL, "error", err)
			rec.DetailState = DetailPartialFailure
			rec.DetailError = err.Error()
			continue
		}

		rec.Detail = detail
		rec.DetailState = DetailComplete
		rec.DetailError = ""

		if (i+1)%10 == 0 {
			c.logger.Info("Detail progress", "done", i+1, "total", total)
		}
	}

	span.SetAttributes(attribute.Int("records", total))
	return records
}

// resolveDetailURLs fills in detail links for records that came from the
// bulk export, which carries none. One structural request harvests the
// links; records are matched by natural key.
func (c *Client) resolveDetailURLs(ctx context.Context, scope *Scope, records []Record) error {
	missing := false
	for i := range records {
		if records[i].detailURL == "" {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}

	scraped, err := c.fetchScrape(ctx, scope)
	if err != nil {
		return err
	}

	links := make(map[string]string, len(scraped))
	for i := range scraped {
		if scraped[i].detailURL != "" {
			links[scraped[i].Key()] = scraped[i].detailURL
		}
	}
	for i := range records {
		if records[i].detailURL == "" {
			records[i].detailURL = links[records[i].Key()]
		}
	}
	return nil
}

// abortRemaining marks records not yet enriched with the session-aborted
// reason. Already-complete records are left alone.
func (c *Client) abortRemaining(records []Record) {
	for i := range records {
		if records[i].DetailState != DetailComplete {
			records[i].DetailState = DetailPartialFailure
			records[i].DetailError = ErrSessionAborted.Error()
		}
	}
	c.logger.Warn("Session aborted during detail pass", "remaining", len(records))
}

// fetchDetail retrieves and parses one detail document.
func (c *Client) fetchDetail(ctx context.Context, detailURL string) (map[string]string, error) {
	body, _, err := c.getURL(ctx, detailURL)
	if err != nil {
		return nil, err
	}
	return parseDetailHTML(body)
}

// parseDetailHTML extracts extended fields from a detail document. The
// page layout drifts, so extraction is text-pattern based rather than
// selector based.
func parseDetailHTML(body []byte) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaDrift, err)
	}

	text := doc.Text()
	detail := make(map[string]string)

	if m := repeaterIDPattern.FindStringSubmatch(text); m != nil {
		detail["repeater_id"] = m[1]
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 200 {
			continue
		}
		m := keyValuePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(m[1]))
		key = strings.NewReplacer(" ", "_", "-", "_", "/", "_").Replace(key)
		value := strings.TrimSpace(m[2])
		if value == "" || detailSkipKeys[key] {
			continue
		}
		if _, exists := detail[key]; !exists {
			detail[key] = value
		}
	}

	if grids := gridSquarePattern.FindAllString(text, -1); len(grids) > 0 {
		detail["grid_square"] = grids[0]
	}

	if len(detail) == 0 {
		return nil, fmt.Errorf("%w: no extended fields in detail document", ErrSchemaDrift)
	}
	return detail, nil
}
