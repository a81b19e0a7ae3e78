package rbook

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
)

// fetchExport runs the primary strategy: the bulk tabular export.
// Any payload that is not parseable, non-empty CSV in the expected schema
// is reported as ErrSchemaDrift so the chain falls back without retrying.
func (c *Client) fetchExport(ctx context.Context, scope *Scope) ([]Record, error) {
	body, header, err := c.get(ctx, exportPath, exportQuery(scope))
	if err != nil {
		return nil, err
	}

	if ct := header.Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		return nil, fmt.Errorf("%w: content type %q", ErrSchemaDrift, ct)
	}

	records, err := parseExportCSV(body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Bulk export succeeded", "rows", len(records))
	return records, nil
}

// parseExportCSV decodes the export payload into the unified record
// schema.
func parseExportCSV(body []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaDrift, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: export contains no data rows", ErrSchemaDrift)
	}

	columns := make([]string, len(rows[0]))
	combined := -1
	for i, h := range rows[0] {
		if combinedToneColumn(h) {
			combined = i
		}
		columns[i] = canonicalColumn(h)
	}
	if !containsColumn(columns, colFrequency) {
		return nil, fmt.Errorf("%w: no frequency column in export header", ErrSchemaDrift)
	}

	var records []Record
	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		rec := recordFromCells(columns, row)
		if combined >= 0 && combined < len(row) {
			rec.ToneUp, rec.ToneDown = splitTonePair(row[combined])
		}
		rec.Provenance = ProvenancePrimary
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: export contains only empty rows", ErrSchemaDrift)
	}
	return records, nil
}

func containsColumn(columns []string, want string) bool {
	for _, c := range columns {
		if c == want {
			return true
		}
	}
	return false
}
