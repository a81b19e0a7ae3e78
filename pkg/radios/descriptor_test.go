package radios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDescriptorKinds(t *testing.T) {
	cases := []struct {
		raw  string
		kind DescriptorKind
	}{
		{"Anytone_CPS_4.00", DescriptorExact},
		{"Anytone_CPS_3.00_3.08", DescriptorRange},
		{"K5_CPS_2.0.3_2.1.8", DescriptorRange},
		{"DM_32UV_CPS_2.08_2.12", DescriptorRange},
		{"CHIRP_next_20240801_20250401", DescriptorDateRange},
		{"CHIRP_next_20240801", DescriptorDateRange},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			d, err := ParseDescriptor(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, d.Kind())
			assert.Equal(t, tc.raw, d.Raw())
		})
	}
}

func TestParseDescriptorErrors(t *testing.T) {
	_, err := ParseDescriptor("Simple_Name")
	assert.ErrorContains(t, err, "no version token")

	_, err = ParseDescriptor("4.00")
	assert.ErrorContains(t, err, "no vendor token")

	_, err = ParseDescriptor("")
	assert.Error(t, err)
}

func TestDescriptorDisplay(t *testing.T) {
	cases := map[string]string{
		"Anytone_CPS_3.00_3.08":        "Anytone-CPS 3.00-3.08",
		"Anytone_CPS_4.00":             "Anytone-CPS 4.00",
		"DM_32UV_CPS_2.08_2.12":        "DM 32UV-CPS 2.08-2.12",
		"OpenGD77_CPS_4.2.5_4.3.0":     "OpenGD77-CPS 4.2.5-4.3.0",
		"CHIRP_next_20240801_20250401": "CHIRP-next 20240801+",
		"CHIRP_next_20240801":          "CHIRP-next 20240801+",
	}
	for raw, want := range cases {
		d, err := ParseDescriptor(raw)
		require.NoError(t, err)
		assert.Equal(t, want, d.Display())
	}
}

func TestCompareComponents(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2.0", "2.0.0", 0},
		{"2.0", "2.0.6", -1},
		{"2.1", "2.0.9", 1},
		{"3.08", "3.08", 0},
		{"3.09", "3.08", 1},
		{"1.0", "1.00", 0},
	}
	for _, tc := range cases {
		a, err := parseComponents(tc.a)
		require.NoError(t, err)
		b, err := parseComponents(tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.want, compareComponents(a, b), "%s vs %s", tc.a, tc.b)
	}
}
