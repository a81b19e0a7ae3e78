package band

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNormalizesAliases(t *testing.T) {
	got, err := Validate([]string{"VHF", "uhf", "2m"})
	require.NoError(t, err)
	// vhf folds into 2m, so the selection de-duplicates to two bands.
	assert.Equal(t, []string{"2m", "70cm"}, got)
}

func TestValidateRejectsUnknownBand(t *testing.T) {
	_, err := Validate([]string{"13cm"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "13cm")
}

func TestValidateEmptyMeansAll(t *testing.T) {
	got, err := Validate(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{All}, got)
}

func TestQueryParam(t *testing.T) {
	assert.Equal(t, "2m", QueryParam([]string{"2m"}))
	assert.Equal(t, "440", QueryParam([]string{"70cm"}))
	assert.Equal(t, "All", QueryParam([]string{"2m", "70cm"}))
	assert.Equal(t, "All", QueryParam([]string{All}))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches(146.52, []string{"2m"}))
	assert.True(t, Matches(446.0, []string{"2m", "70cm"}))
	assert.False(t, Matches(446.0, []string{"2m"}))
	assert.True(t, Matches(1296.1, []string{All}))

	// Inclusive edges.
	assert.True(t, Matches(144.0, []string{"2m"}))
	assert.True(t, Matches(148.0, []string{"2m"}))
	assert.False(t, Matches(148.001, []string{"2m"}))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "all bands", Describe([]string{All}))
	assert.Equal(t, "2m band", Describe([]string{"2m"}))
	assert.Equal(t, "2m and 70cm bands", Describe([]string{"2m", "70cm"}))
	assert.Equal(t, "6m, 2m and 70cm bands", Describe([]string{"6m", "2m", "70cm"}))
}
