package csvio

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/radiobridge/radiobridge/pkg/band"
	"github.com/radiobridge/radiobridge/pkg/rbook"
)

// coreColumns is the fixed part of the record layout; extended detail
// fields follow as their own columns.
var coreColumns = []string{
	"frequency", "offset", "tone", "tone_up", "tone_down",
	"callsign", "location", "county", "state", "use", "status",
	"provenance", "detail_state", "detail_error",
}

// FromResult converts an acquisition result into a writable document,
// carrying the scope as header metadata so later runs can tell where a
// file came from.
func FromResult(result *rbook.Result) *Document {
	metadata := map[string]string{
		"state":      result.Scope.State,
		"session":    result.SessionID,
		"provenance": string(result.Provenance),
		"records":    strconv.Itoa(len(result.Records)),
	}
	if result.Scope.County != "" {
		metadata["county"] = result.Scope.County
	}
	if result.Scope.City != "" {
		metadata["city"] = result.Scope.City
	}
	if result.Scope.Country != "" {
		metadata["country"] = result.Scope.Country
	}
	if len(result.Scope.Bands) > 0 {
		metadata["bands"] = band.Describe(result.Scope.Bands)
	}
	return FromRecords(result.Records, metadata)
}

// FromRecords lays records out in the core-plus-detail column scheme with
// the given header metadata.
func FromRecords(records []rbook.Record, metadata map[string]string) *Document {
	doc := &Document{Metadata: metadata}

	detailCols := detailColumns(records)
	doc.Columns = append(append([]string{}, coreColumns...), detailCols...)

	for _, rec := range records {
		row := []string{
			rec.Frequency, rec.Offset, rec.Tone, rec.ToneUp, rec.ToneDown,
			rec.Callsign, rec.Location, rec.County, rec.State, rec.Use, rec.Status,
			string(rec.Provenance), string(rec.DetailState), rec.DetailError,
		}
		for _, col := range detailCols {
			row = append(row, rec.Detail[col])
		}
		doc.Rows = append(doc.Rows, row)
	}
	return doc
}

// ToRecords converts a read document back into records. Core columns
// map onto the record fields; any other column is an extended detail
// field.
func ToRecords(doc *Document) ([]rbook.Record, error) {
	index := make(map[string]int, len(doc.Columns))
	for i, col := range doc.Columns {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := index["frequency"]; !ok {
		return nil, fmt.Errorf("document has no frequency column")
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]rbook.Record, 0, len(doc.Rows))
	for _, row := range doc.Rows {
		rec := rbook.Record{
			Frequency:   cell(row, "frequency"),
			Offset:      cell(row, "offset"),
			Tone:        cell(row, "tone"),
			ToneUp:      cell(row, "tone_up"),
			ToneDown:    cell(row, "tone_down"),
			Callsign:    cell(row, "callsign"),
			Location:    cell(row, "location"),
			County:      cell(row, "county"),
			State:       cell(row, "state"),
			Use:         cell(row, "use"),
			Status:      cell(row, "status"),
			Provenance:  rbook.Provenance(cell(row, "provenance")),
			DetailState: rbook.DetailState(cell(row, "detail_state")),
			DetailError: cell(row, "detail_error"),
		}

		for col, i := range index {
			if i >= len(row) || contains(coreColumns, col) {
				continue
			}
			if v := strings.TrimSpace(row[i]); v != "" {
				if rec.Detail == nil {
					rec.Detail = make(map[string]string)
				}
				rec.Detail[col] = v
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// detailColumns collects the sorted union of extended field names.
func detailColumns(records []rbook.Record) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for k := range rec.Detail {
			seen[k] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
