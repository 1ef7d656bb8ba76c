package dates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tangokultura/internal/dates"
)

func mustDate(t *testing.T, s string) dates.Date {
	t.Helper()
	d, err := dates.ParseDate(s)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return d
}

func asStrings(ds []dates.Date) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

func TestExpandWeekly(t *testing.T) {
	got := dates.ExpandRepetitions(mustDate(t, "01-01-2025"), dates.RepeatWeekly, mustDate(t, "15-01-2025"))
	assert.Equal(t, []string{"01-01-2025", "08-01-2025", "15-01-2025"}, asStrings(got))
}

func TestExpandBiweekly(t *testing.T) {
	got := dates.ExpandRepetitions(mustDate(t, "01-01-2025"), dates.RepeatBiweekly, mustDate(t, "30-01-2025"))
	assert.Equal(t, []string{"01-01-2025", "15-01-2025", "29-01-2025"}, asStrings(got))
}

func TestExpandMonthly(t *testing.T) {
	got := dates.ExpandRepetitions(mustDate(t, "01-01-2025"), dates.RepeatMonthly, mustDate(t, "01-03-2025"))
	assert.Equal(t, []string{"01-01-2025", "01-02-2025", "01-03-2025"}, asStrings(got))
}

func TestExpandNone(t *testing.T) {
	got := dates.ExpandRepetitions(mustDate(t, "01-01-2025"), dates.RepeatNone, mustDate(t, "01-06-2025"))
	assert.Equal(t, []string{"01-01-2025"}, asStrings(got))
}

func TestExpandUntilBeforeStart(t *testing.T) {
	got := dates.ExpandRepetitions(mustDate(t, "01-06-2025"), dates.RepeatWeekly, mustDate(t, "01-01-2025"))
	assert.Equal(t, []string{"01-06-2025"}, asStrings(got))
}

func TestExpandMissingUntil(t *testing.T) {
	got := dates.ExpandRepetitions(mustDate(t, "01-06-2025"), dates.RepeatWeekly, dates.Date{})
	assert.Equal(t, []string{"01-06-2025"}, asStrings(got))
}

func TestExpandUntilEqualsStart(t *testing.T) {
	got := dates.ExpandRepetitions(mustDate(t, "01-06-2025"), dates.RepeatWeekly, mustDate(t, "01-06-2025"))
	assert.Equal(t, []string{"01-06-2025"}, asStrings(got))
}

func TestParseRule(t *testing.T) {
	rule, err := dates.ParseRule("biweekly")
	assert.NoError(t, err)
	assert.Equal(t, dates.RepeatBiweekly, rule)

	rule, err = dates.ParseRule("")
	assert.NoError(t, err)
	assert.Equal(t, dates.RepeatNone, rule)

	_, err = dates.ParseRule("daily")
	assert.Error(t, err)
}
