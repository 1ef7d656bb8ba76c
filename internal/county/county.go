package county

import "strings"

// Unknown is returned for empty or unmapped cities.
const Unknown = "Unknown"

// cityToCounty maps city names to Norwegian counties (English spelling).
// Extend as new cities show up in event submissions.
var cityToCounty = map[string]string{
	"oslo":         "Oslo",
	"bergen":       "Vestland",
	"trondheim":    "Trøndelag",
	"stavanger":    "Rogaland",
	"tromsø":       "Troms og Finnmark",
	"kristiansand": "Agder",
	"bodø":         "Nordland",
	"drammen":      "Viken",
	"fredrikstad":  "Viken",
	"ålesund":      "Møre og Romsdal",
	"sandnes":      "Rogaland",
	"tønsberg":     "Vestfold og Telemark",
	"hamar":        "Innlandet",
	"molde":        "Møre og Romsdal",
	"lillehammer":  "Innlandet",
}

// counties is the filterable region list shown in the county selector.
var counties = []string{
	"Oslo",
	"Viken",
	"Innlandet",
	"Vestfold og Telemark",
	"Agder",
	"Rogaland",
	"Vestland",
	"Møre og Romsdal",
	"Trøndelag",
	"Nordland",
	"Troms og Finnmark",
}

// CountyFor derives the county for a city name. Lookup is whitespace-trimmed
// and case-insensitive; empty or unmapped input yields Unknown.
func CountyFor(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return Unknown
	}
	if c, ok := cityToCounty[strings.ToLower(city)]; ok {
		return c
	}
	return Unknown
}

// Counties returns the selectable county names in display order.
func Counties() []string {
	out := make([]string, len(counties))
	copy(out, counties)
	return out
}
