package radios

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProfile(cps ...string) *Profile {
	return &Profile{
		Manufacturer: "Test",
		Model:        "TestModel",
		Variant:      "v1",
		Key:          "test",
		Firmware:     mustDescriptors("Test_FW_1.0_2.0"),
		CPS:          mustDescriptors(cps...),
	}
}

func TestValidateNumericRange(t *testing.T) {
	p := testProfile("Anytone_CPS_3.00_3.08")

	cases := []struct {
		input     string
		supported bool
		reason    Reason
	}{
		{"Anytone CPS 3.05", true, ReasonInRange},
		{"Anytone CPS 3.00", true, ReasonInRange},
		{"Anytone CPS 3.08", true, ReasonInRange},
		{"Anytone CPS 2.99", false, ReasonOutOfRange},
		{"Anytone CPS 3.09", false, ReasonOutOfRange},
	}
	for _, tc := range cases {
		got := Validate(p, AxisCPS, tc.input)
		assert.Equal(t, tc.supported, got.Supported, tc.input)
		assert.Equal(t, tc.reason, got.Reason, tc.input)
	}
}

func TestValidateExact(t *testing.T) {
	p := testProfile("Anytone_CPS_4.00")

	assert.True(t, Validate(p, AxisCPS, "Anytone CPS 4.00").Supported)
	assert.True(t, Validate(p, AxisCPS, "Anytone_CPS_4.00").Supported)
	assert.Equal(t, ReasonExactMatch, Validate(p, AxisCPS, "Anytone CPS 4.00").Reason)

	got := Validate(p, AxisCPS, "Anytone CPS 4.01")
	assert.False(t, got.Supported)
	assert.Equal(t, ReasonOutOfRange, got.Reason)

	// Trailing-zero equivalence.
	assert.True(t, Validate(p, AxisCPS, "Anytone CPS 4.0").Supported)
}

func TestValidateMultiWordVendor(t *testing.T) {
	p := testProfile("DM_32UV_CPS_2.08_2.12")

	assert.True(t, Validate(p, AxisCPS, "DM 32UV CPS 2.10").Supported)
	assert.True(t, Validate(p, AxisCPS, "DM 32UV CPS 2.08").Supported)
	assert.True(t, Validate(p, AxisCPS, "DM 32UV CPS 2.12").Supported)
	assert.False(t, Validate(p, AxisCPS, "DM 32UV CPS 2.07").Supported)
	assert.False(t, Validate(p, AxisCPS, "DM 32UV CPS 2.13").Supported)
}

func TestValidateComponentPadding(t *testing.T) {
	p := testProfile("K5_CPS_2.0.6_2.1.8")

	assert.True(t, Validate(p, AxisCPS, "K5 CPS 2.0.6").Supported)
	assert.True(t, Validate(p, AxisCPS, "K5 CPS 2.1.0").Supported)
	assert.True(t, Validate(p, AxisCPS, "K5 CPS 2.1.8").Supported)
	assert.False(t, Validate(p, AxisCPS, "K5 CPS 2.0.5").Supported)
	assert.False(t, Validate(p, AxisCPS, "K5 CPS 2.1.9").Supported)

	// 2.0 pads to 2.0.0, below the 2.0.6 lower bound.
	assert.False(t, Validate(p, AxisCPS, "K5 CPS 2.0").Supported)
	// 2.1 pads to 2.1.0, inside the range.
	assert.True(t, Validate(p, AxisCPS, "K5 CPS 2.1").Supported)
}

func TestValidateDateRange(t *testing.T) {
	open := testProfile("CHIRP_next_20240801")

	assert.True(t, Validate(open, AxisCPS, "CHIRP next 20250401").Supported)
	assert.True(t, Validate(open, AxisCPS, "CHIRP next 20240801").Supported)
	// Arbitrarily far future dates stay supported on an open range.
	assert.True(t, Validate(open, AxisCPS, "CHIRP next 20991231").Supported)
	assert.False(t, Validate(open, AxisCPS, "CHIRP next 20240101").Supported)

	closed := testProfile("CHIRP_next_20240801_20250401")
	assert.True(t, Validate(closed, AxisCPS, "CHIRP next 20241201").Supported)
	assert.False(t, Validate(closed, AxisCPS, "CHIRP next 20250501").Supported)
	assert.False(t, Validate(closed, AxisCPS, "CHIRP next 20240701").Supported)

	// Callers sometimes echo the whole declared range back.
	got := Validate(closed, AxisCPS, "CHIRP next 20240801-20250401")
	assert.True(t, got.Supported)
	assert.Equal(t, ReasonExactMatch, got.Reason)
}

func TestValidateCaseFolding(t *testing.T) {
	p := testProfile("CHIRP_next_20240801_20250401")

	for _, input := range []string{
		"chirp next 20241201",
		"CHIRP NEXT 20241201",
		"Chirp Next 20241201",
	} {
		assert.True(t, Validate(p, AxisCPS, input).Supported, input)
	}
}

func TestValidateUnrecognizedVendor(t *testing.T) {
	p := testProfile("Anytone_CPS_3.00_3.08")

	got := Validate(p, AxisCPS, "Motorola CPS 3.05")
	assert.False(t, got.Supported)
	assert.Equal(t, ReasonUnrecognizedVendor, got.Reason)
}

func TestValidateMalformedVersion(t *testing.T) {
	p := testProfile("Anytone_CPS_3.00_3.08")

	got := Validate(p, AxisCPS, "Anytone CPS latest")
	assert.False(t, got.Supported)
	assert.Equal(t, ReasonMalformedVersion, got.Reason)
}

func TestValidateEmptyInput(t *testing.T) {
	p := testProfile("Anytone_CPS_3.00_3.08")

	for _, input := range []string{"", "   "} {
		got := Validate(p, AxisCPS, input)
		assert.True(t, got.Supported)
		assert.Equal(t, ReasonNoDeclaration, got.Reason)
	}
}

func TestValidateMultipleDescriptors(t *testing.T) {
	p := testProfile(
		"Anytone_CPS_3.00_3.08",
		"Anytone_CPS_4.00",
		"CHIRP_next_20240801_20250401",
	)

	assert.True(t, Validate(p, AxisCPS, "Anytone CPS 3.05").Supported)
	assert.True(t, Validate(p, AxisCPS, "Anytone CPS 4.00").Supported)
	assert.True(t, Validate(p, AxisCPS, "CHIRP next 20241201").Supported)
	assert.False(t, Validate(p, AxisCPS, "Anytone CPS 2.50").Supported)
}

func TestValidateAxesSeparate(t *testing.T) {
	p := testProfile("Anytone_CPS_3.00_3.08")

	assert.True(t, Validate(p, AxisFirmware, "Test FW 1.5").Supported)
	assert.False(t, Validate(p, AxisFirmware, "Test FW 2.5").Supported)
	assert.False(t, Validate(p, AxisCPS, "Test FW 1.5").Supported)
}

func TestValidateDeterministic(t *testing.T) {
	p := testProfile("Anytone_CPS_3.00_3.08")

	first := Validate(p, AxisCPS, "Anytone CPS 3.05")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Validate(p, AxisCPS, "Anytone CPS 3.05"))
	}
}

func TestValidateMatchedDisplay(t *testing.T) {
	p := testProfile("Anytone_CPS_3.00_3.08")

	got := Validate(p, AxisCPS, "Anytone CPS 3.05")
	assert.Equal(t, "Anytone-CPS 3.00-3.08", got.Matched)

	got = Validate(p, AxisCPS, "Anytone CPS 3.09")
	assert.Empty(t, got.Matched)
}
