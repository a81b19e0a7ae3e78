package rbook

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fetchScrape runs the fallback strategy: the browsable search page. It
// extracts the same record schema by document structure instead of the
// export format, and harvests per-record detail links as it goes.
func (c *Client) fetchScrape(ctx context.Context, scope *Scope) ([]Record, error) {
	body, _, err := c.get(ctx, searchPath, searchQuery(scope))
	if err != nil {
		return nil, err
	}

	records, err := parseSearchHTML(body, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("no repeater table found for %s: %w", scope.Describe(), err)
	}

	c.logger.Info("Structural scrape succeeded", "rows", len(records))
	return records, nil
}

// parseSearchHTML locates the repeater table and converts its rows into
// records tagged with fallback provenance.
func parseSearchHTML(body []byte, baseURL string) ([]Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaDrift, err)
	}

	table := findRepeaterTable(doc)
	if table == nil {
		return nil, fmt.Errorf("%w: no table in document", ErrSchemaDrift)
	}

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil, fmt.Errorf("%w: table has no data rows", ErrSchemaDrift)
	}

	// Header row establishes the column layout.
	var columns []string
	combined := -1
	rows.First().Find("th, td").Each(func(i int, s *goquery.Selection) {
		h := s.Text()
		if combinedToneColumn(h) {
			combined = i
		}
		columns = append(columns, canonicalColumn(h))
	})
	if !containsColumn(columns, colFrequency) {
		return nil, fmt.Errorf("%w: no frequency column in table header", ErrSchemaDrift)
	}

	var records []Record
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 || emptyRow(cells) {
			return
		}

		rec := recordFromCells(columns, cells)
		if combined >= 0 && combined < len(cells) {
			rec.ToneUp, rec.ToneDown = splitTonePair(cells[combined])
		}
		rec.Provenance = ProvenanceFallback
		rec.detailURL = detailLink(row, baseURL)
		records = append(records, rec)
	})

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: table contains only empty rows", ErrSchemaDrift)
	}
	return records, nil
}

// findRepeaterTable tries the known selectors, then falls back to the
// largest table in the document.
func findRepeaterTable(doc *goquery.Document) *goquery.Selection {
	if t := doc.Find("table.w3-table").First(); t.Length() > 0 {
		return t
	}
	if t := doc.Find("table#repeaters").First(); t.Length() > 0 {
		return t
	}

	var largest *goquery.Selection
	maxRows := 0
	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		if n := t.Find("tr").Length(); n > maxRows {
			maxRows = n
			largest = t
		}
	})
	return largest
}

// detailLink extracts the record's detail document URL from the row's
// frequency cell, resolving it against the source root.
func detailLink(row *goquery.Selection, baseURL string) string {
	href, ok := row.Find("td").First().Find("a").Attr("href")
	if !ok || !strings.Contains(href, "details.php") {
		return ""
	}

	base, err := url.Parse(baseURL + "/repeaters/")
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
