// Package normalize unifies field encodings produced by the acquisition
// strategies before records reach formatting code.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// Frequency canonicalizes a frequency value to a fixed-precision numeric
// string in MHz. The boolean reports whether the input parsed; callers drop
// records whose frequency does not.
func Frequency(raw string) (string, float64, bool) {
	s := stripUnits(raw, " MHz", "MHz")
	if s == "" {
		return "", 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", 0, false
	}
	return fmt.Sprintf("%.6f", f), f, true
}

// Tone canonicalizes a tone encoding. CTCSS tones (numeric, 50-300 Hz)
// become one-decimal strings; DCS codes and other non-numeric encodings
// are uppercased and passed through. Empty and placeholder values return "".
func Tone(raw string) string {
	s := stripUnits(raw, " Hz", "Hz")
	switch strings.ToLower(s) {
	case "", "none", "n/a", "na", "csq":
		return ""
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f >= 50.0 && f <= 300.0 {
			return fmt.Sprintf("%.1f", f)
		}
		return s
	}

	// DCS codes such as D023N or 023.
	return strings.ToUpper(s)
}

// Offset canonicalizes an offset to a signed fixed-precision MHz string.
// Bare "+"/"-" direction markers and other non-numeric values pass through
// trimmed so the caller can resolve them against band conventions.
func Offset(raw string) string {
	s := stripUnits(raw, " MHz", "MHz")
	if s == "" {
		return ""
	}
	if s == "+" || s == "-" {
		return s
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	if f == 0 {
		return "0.000000"
	}
	return fmt.Sprintf("%+.6f", f)
}

func stripUnits(raw string, units ...string) string {
	s := strings.TrimSpace(raw)
	for _, u := range units {
		s = strings.ReplaceAll(s, u, "")
	}
	return strings.ReplaceAll(s, " ", "")
}
