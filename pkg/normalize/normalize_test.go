package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequency(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantMHz float64
		ok      bool
	}{
		{"146.52", "146.520000", 146.52, true},
		{" 446.000 MHz ", "446.000000", 446.0, true},
		{"147", "147.000000", 147.0, true},
		{"", "", 0, false},
		{"n/a", "", 0, false},
		{"freq", "", 0, false},
	}

	for _, tt := range tests {
		got, mhz, ok := Frequency(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.InDelta(t, tt.wantMHz, mhz, 1e-9, "input %q", tt.in)
	}
}

func TestTone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100.0", "100.0"},
		{"123", "123.0"},
		{"88.5 Hz", "88.5"},
		{"D023N", "D023N"},
		{"d023n", "D023N"},
		{"none", ""},
		{"N/A", ""},
		{"CSQ", ""},
		{"", ""},
		// Outside the CTCSS range, numeric values pass through untouched.
		{"1750", "1750"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Tone(tt.in), "input %q", tt.in)
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.6", "+0.600000"},
		{"+0.600", "+0.600000"},
		{"-5", "-5.000000"},
		{"0", "0.000000"},
		{"5 MHz", "+5.000000"},
		{"+", "+"},
		{"-", "-"},
		{"", ""},
		{"simplex", "simplex"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Offset(tt.in), "input %q", tt.in)
	}
}
