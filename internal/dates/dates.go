package dates

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Wire formats used by the React client. These are NOT ISO-8601 and must be
// preserved exactly: dates travel as dd-MM-yyyy, times as HH:mm.
const (
	DateLayout  = "02-01-2006"
	ClockLayout = "15:04"
)

// Date is a calendar day without a time component. It parses once at the
// boundary (JSON or SQL) and fails fast on malformed input instead of
// carrying raw strings around.
type Date struct {
	t time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want dd-MM-yyyy): %w", s, err)
	}
	return Date{t: t}, nil
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day, date-only.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) String() string     { return d.t.Format(DateLayout) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// Weekday-and-month heading used by the listing page, e.g. "Monday, January 2".
func (d Date) Heading() string { return d.t.Format("Monday, January 2") }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the canonical wire string so existing rows stay readable by
// the documented client.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case string:
		// Legacy rows may hold unparseable strings; scan them as zero so a
		// single bad row cannot fail a whole listing. Writes never produce
		// them: input is validated at the boundary.
		parsed, err := ParseDate(v)
		if err != nil {
			*d = Date{}
			return nil
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Clock is a time of day in HH:mm.
type Clock struct {
	t time.Time
}

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q (want HH:mm): %w", s, err)
	}
	return Clock{t: t}, nil
}

func (c Clock) IsZero() bool        { return c.t.IsZero() }
func (c Clock) String() string      { return c.t.Format(ClockLayout) }
func (c Clock) Before(o Clock) bool { return c.t.Before(o.t) }
func (c Clock) After(o Clock) bool  { return c.t.After(o.t) }

func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*c = Clock{}
		return nil
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Clock) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return c.String(), nil
}

func (c *Clock) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = Clock{}
		return nil
	case string:
		parsed, err := ParseClock(v)
		if err != nil {
			*c = Clock{}
			return nil
		}
		*c = parsed
		return nil
	case []byte:
		return c.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Clock", src)
	}
}
