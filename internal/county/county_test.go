package county_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tangokultura/internal/county"
)

func TestCountyForKnownCities(t *testing.T) {
	assert.Equal(t, "Oslo", county.CountyFor("Oslo"))
	assert.Equal(t, "Vestland", county.CountyFor("Bergen"))
	assert.Equal(t, "Trøndelag", county.CountyFor("Trondheim"))
	assert.Equal(t, "Viken", county.CountyFor("Drammen"))
}

func TestCountyForIsCaseInsensitiveAndTrims(t *testing.T) {
	assert.Equal(t, "Vestland", county.CountyFor("  bergen  "))
	assert.Equal(t, "Oslo", county.CountyFor("OSLO"))
	assert.Equal(t, "Troms og Finnmark", county.CountyFor("tromsø"))
}

func TestCountyForUnknown(t *testing.T) {
	assert.Equal(t, county.Unknown, county.CountyFor(""))
	assert.Equal(t, county.Unknown, county.CountyFor("   "))
	assert.Equal(t, county.Unknown, county.CountyFor("unknown-city"))
}

func TestCountiesList(t *testing.T) {
	counties := county.Counties()
	assert.Len(t, counties, 11)
	assert.Contains(t, counties, "Oslo")
	assert.Contains(t, counties, "Vestland")

	// Callers get a copy, not the backing array.
	counties[0] = "mutated"
	assert.Equal(t, "Oslo", county.Counties()[0])
}
