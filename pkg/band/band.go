// Package band defines the amateur radio band table and frequency-based
// filtering of repeater records.
package band

import (
	"fmt"
	"sort"
	"strings"
)

// Range is an inclusive frequency range in MHz.
type Range struct {
	Min float64
	Max float64
}

// All is the wildcard band label.
const All = "all"

// Bands maps band labels to their frequency ranges.
var Bands = map[string]Range{
	// VHF
	"6m": {50.0, 54.0},
	"4m": {70.0, 70.5},
	"2m": {144.0, 148.0},
	// UHF
	"70cm": {420.0, 450.0},
	"33cm": {902.0, 928.0},
	"23cm": {1240.0, 1300.0},
}

// aliases maps common alternate names to canonical band labels.
var aliases = map[string]string{
	"vhf": "2m",
	"uhf": "70cm",
}

// queryParams maps canonical bands to the remote source's band query
// parameter values.
var queryParams = map[string]string{
	"6m":   "6m",
	"4m":   "4m",
	"2m":   "2m",
	"70cm": "440",
	"33cm": "900",
	"23cm": "1200",
	All:    "All",
}

// Supported returns the band labels accepted on the command line,
// wildcard included, in stable order.
func Supported() []string {
	out := make([]string, 0, len(Bands)+1)
	for b := range Bands {
		out = append(out, b)
	}
	sort.Strings(out)
	return append(out, All)
}

// Validate normalizes and de-duplicates a band selection. An empty
// selection means the wildcard. Unknown labels are an error.
func Validate(bands []string) ([]string, error) {
	if len(bands) == 0 {
		return []string{All}, nil
	}

	var normalized []string
	seen := make(map[string]bool)
	for _, b := range bands {
		label := strings.ToLower(strings.TrimSpace(b))
		if canonical, ok := aliases[label]; ok {
			label = canonical
		}
		if _, ok := Bands[label]; !ok && label != All {
			return nil, fmt.Errorf("unsupported band %q, supported bands: %s", b, strings.Join(Supported(), ", "))
		}
		if !seen[label] {
			seen[label] = true
			normalized = append(normalized, label)
		}
	}
	return normalized, nil
}

// QueryParam returns the remote source's band parameter for a normalized
// selection. Multiple bands collapse to the wildcard; filtering then
// happens client-side by frequency.
func QueryParam(bands []string) string {
	if len(bands) != 1 {
		return queryParams[All]
	}
	if p, ok := queryParams[bands[0]]; ok {
		return p
	}
	return queryParams[All]
}

// Matches reports whether a frequency in MHz falls inside any of the
// selected bands. The wildcard matches everything.
func Matches(freqMHz float64, bands []string) bool {
	for _, b := range bands {
		if b == All {
			return true
		}
		if r, ok := Bands[b]; ok && freqMHz >= r.Min && freqMHz <= r.Max {
			return true
		}
	}
	return false
}

// Describe formats a band selection for log and report output.
func Describe(bands []string) string {
	if len(bands) == 0 || bands[0] == All {
		return "all bands"
	}
	if len(bands) == 1 {
		return bands[0] + " band"
	}
	return strings.Join(bands[:len(bands)-1], ", ") + " and " + bands[len(bands)-1] + " bands"
}
