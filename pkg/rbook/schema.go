package rbook

import "strings"

// Canonical column names shared by both strategies.
const (
	colFrequency = "frequency"
	colOffset    = "offset"
	colTone      = "tone"
	colToneUp    = "tone_up"
	colToneDown  = "tone_down"
	colCallsign  = "callsign"
	colLocation  = "location"
	colCounty    = "county"
	colState     = "state"
	colUse       = "use"
	colStatus    = "status"
)

// headerAliases maps source header spellings to canonical column names.
var headerAliases = map[string]string{
	"frequency":          colFrequency,
	"freq":               colFrequency,
	"output freq":        colFrequency,
	"downlink":           colFrequency,
	"offset":             colOffset,
	"tone":               colTone,
	"pl":                 colTone,
	"uplink tone":        colToneUp,
	"downlink tone":      colToneDown,
	"call sign":          colCallsign,
	"callsign":           colCallsign,
	"call":               colCallsign,
	"location":           colLocation,
	"city":               colLocation,
	"county":             colCounty,
	"state":              colState,
	"st":                 colState,
	"use":                colUse,
	"operational status": colStatus,
	"op status":          colStatus,
	"status":             colStatus,
}

// canonicalColumn resolves a raw header cell to a canonical column name,
// or a lowercased snake_case fallback for columns we carry but do not map.
func canonicalColumn(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if c, ok := headerAliases[h]; ok {
		return c
	}
	return strings.ReplaceAll(h, " ", "_")
}

// combinedToneColumn reports whether a header holds both tone directions,
// e.g. "Tone Up / Down".
func combinedToneColumn(header string) bool {
	h := strings.ToLower(header)
	if !strings.Contains(h, "tone") {
		return false
	}
	return strings.Contains(h, "up") || strings.Contains(h, "down") || strings.Contains(h, "/")
}

// splitTonePair splits a combined tone cell into up/down values. A single
// value becomes the uplink tone.
func splitTonePair(value string) (up, down string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", ""
	}

	var parts []string
	if strings.Contains(v, "/") {
		parts = strings.SplitN(v, "/", 2)
	} else if fields := strings.Fields(v); len(fields) >= 2 {
		parts = []string{fields[0], strings.Join(fields[1:], " ")}
	} else {
		parts = []string{v}
	}

	up = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		down = strings.TrimSpace(parts[1])
	}
	return up, down
}

// recordFromCells builds a Record from one row, using the resolved
// header layout. Unmapped cells are ignored; the flat schema callers
// persist is fixed.
func recordFromCells(columns []string, cells []string) Record {
	rec := Record{}
	for i, col := range columns {
		if i >= len(cells) {
			break
		}
		val := strings.TrimSpace(cells[i])
		switch col {
		case colFrequency:
			rec.Frequency = val
		case colOffset:
			rec.Offset = val
		case colTone:
			rec.Tone = val
		case colToneUp:
			rec.ToneUp = val
		case colToneDown:
			rec.ToneDown = val
		case colCallsign:
			rec.Callsign = val
		case colLocation:
			rec.Location = val
		case colCounty:
			rec.County = val
		case colState:
			rec.State = val
		case colUse:
			rec.Use = val
		case colStatus:
			rec.Status = val
		}
	}
	return rec
}

// empty reports whether a row carries no data at all.
func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
