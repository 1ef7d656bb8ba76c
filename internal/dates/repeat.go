package dates

import "fmt"

// Rule is the recurrence cadence picked on the create-event form.
type Rule string

const (
	RepeatNone     Rule = "none"
	RepeatWeekly   Rule = "weekly"
	RepeatBiweekly Rule = "biweekly"
	RepeatMonthly  Rule = "monthly"
)

func ParseRule(s string) (Rule, error) {
	switch Rule(s) {
	case RepeatNone, RepeatWeekly, RepeatBiweekly, RepeatMonthly:
		return Rule(s), nil
	case "":
		return RepeatNone, nil
	default:
		return "", fmt.Errorf("unknown repetition rule %q", s)
	}
}

// ExpandRepetitions turns one occurrence into the full dated series: start,
// then start+step while the result stays on or before until. With RepeatNone,
// or when until is missing or before start, only the start date is returned.
func ExpandRepetitions(start Date, rule Rule, until Date) []Date {
	if rule == RepeatNone || until.IsZero() || until.Before(start) {
		return []Date{start}
	}

	var out []Date
	current := start
	for !current.After(until) {
		out = append(out, current)
		switch rule {
		case RepeatWeekly:
			current = current.AddDays(7)
		case RepeatBiweekly:
			current = current.AddDays(14)
		case RepeatMonthly:
			current = current.AddMonths(1)
		default:
			return out
		}
	}
	return out
}
