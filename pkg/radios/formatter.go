package radios

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/radiobridge/radiobridge/pkg/rbook"
)

// ErrNoChannels is returned when no input record survives formatting.
var ErrNoChannels = errors.New("no formattable records")

// FormatOptions carries the per-run knobs shared by every formatter.
type FormatOptions struct {
	// StartChannel is the first channel number to assign. Zero means 1.
	StartChannel int
	// CPSVersion is the caller's declared programming-software version,
	// validated by the command layer before formatting.
	CPSVersion string
}

// Formatter converts acquired records into one programming-software
// import layout. Implementations are stateless; the same formatter is
// shared by every call.
type Formatter interface {
	Name() string
	Description() string
	Profile() *Profile
	RequiredColumns() []string
	OutputColumns() []string
	// Format returns one row per usable record, aligned with
	// OutputColumns. Rows keep the input order.
	Format(records []rbook.Record, opts FormatOptions) ([][]string, error)
}

// ZoneFormatter is implemented by targets whose software imports a zone
// file alongside the channel file.
type ZoneFormatter interface {
	Formatter
	FormatZones(rows [][]string) ([][]string, error)
}

func (o FormatOptions) startChannel() int {
	if o.StartChannel < 1 {
		return 1
	}
	return o.StartChannel
}

// channelName builds the CallSign-Location display name, truncated to
// the target's limit.
func channelName(rec rbook.Record, maxLen, locSlice int) string {
	callsign := strings.TrimSpace(rec.Callsign)
	location := strings.TrimSpace(rec.Location)

	var name string
	switch {
	case callsign != "" && location != "":
		if len(location) > locSlice {
			location = location[:locSlice]
		}
		name = callsign + "-" + location
	case callsign != "":
		name = callsign
	case location != "":
		name = location
		if len(name) > locSlice {
			name = name[:locSlice]
		}
	}

	if len(name) > maxLen {
		name = name[:maxLen]
	}
	return name
}

// resolveNameConflicts appends a numeric suffix to duplicate names,
// shortening the base so the result still fits.
func resolveNameConflicts(names []string, maxLen int) []string {
	used := make(map[string]bool, len(names))
	out := make([]string, len(names))

	for i, name := range names {
		if !used[name] {
			used[name] = true
			out[i] = name
			continue
		}
		for n := 2; ; n++ {
			suffix := strconv.Itoa(n)
			base := name
			if len(base)+len(suffix) > maxLen {
				base = base[:maxLen-len(suffix)]
			}
			candidate := base + suffix
			if !used[candidate] {
				used[candidate] = true
				out[i] = candidate
				break
			}
		}
	}
	return out
}

// transmitFrequency derives the TX frequency from a normalized RX
// frequency and signed offset. Falls back to simplex when either value
// does not parse.
func transmitFrequency(rx, offset string) string {
	if offset == "" || offset == "0.000000" {
		return rx
	}
	rxF, err1 := strconv.ParseFloat(rx, 64)
	offF, err2 := strconv.ParseFloat(offset, 64)
	if err1 != nil || err2 != nil {
		return rx
	}
	return fmt.Sprintf("%.6f", rxF+offF)
}

// toneOrOff substitutes the target's "Off" marker for an absent tone.
func toneOrOff(tone string) string {
	if tone == "" {
		return "Off"
	}
	return tone
}

// toneValues picks the directional tones, falling back to the single
// legacy tone column when the directional pair is absent.
func toneValues(rec rbook.Record) (up, down string) {
	up, down = rec.ToneUp, rec.ToneDown
	if up == "" && down == "" && rec.Tone != "" {
		up, down = rec.Tone, rec.Tone
	}
	return up, down
}

// fallbackName fills in a positional name for records with neither
// callsign nor location.
func fallbackName(channel int) string {
	return fmt.Sprintf("CH%03d", channel)
}
