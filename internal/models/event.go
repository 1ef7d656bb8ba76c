package models

import (
	"github.com/uptrace/bun"

	"tangokultura/internal/dates"
)

// Event types recognised by the listing filters.
const (
	TypeMilonga  = "Milonga"
	TypePractice = "Practice"
	TypeClass    = "Class"
	TypeCourse   = "Course"
	TypeConcert  = "Concert"
)

// Event is the persisted entity. County is intentionally absent: it is a
// pure projection of City computed at read time, never stored.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string       `bun:"id,pk" json:"id"`
	EventName   string       `bun:"event_name,notnull" json:"eventName"`
	TypeEvent   string       `bun:"type_event,notnull" json:"typeEvent"`
	Description string       `bun:"description" json:"description"`
	Organizer   string       `bun:"organizer,notnull" json:"organizer"`
	Address     string       `bun:"address,notnull" json:"address"`
	Date        dates.Date   `bun:"date,notnull" json:"date"`
	EndsDate    *dates.Date  `bun:"ends_date" json:"endsDate"`
	Starts      dates.Clock  `bun:"starts,notnull" json:"starts"`
	Ends        dates.Clock  `bun:"ends,notnull" json:"ends"`
	Price       string       `bun:"price,notnull" json:"price"`
	EventLink   string       `bun:"event_link,notnull" json:"eventLink"`
	City        string       `bun:"city,notnull" json:"city"`
	CreatedBy   string       `bun:"created_by,notnull" json:"createdBy"`
}

// EventInput is the mutable part of an event as accepted on create/update.
// CreatedBy and ID never come from the payload.
type EventInput struct {
	EventName   string      `json:"eventName"`
	TypeEvent   string      `json:"typeEvent"`
	Description string      `json:"description"`
	Organizer   string      `json:"organizer"`
	Address     string      `json:"address"`
	Date        dates.Date  `json:"date"`
	EndsDate    *dates.Date `json:"endsDate"`
	Starts      dates.Clock `json:"starts"`
	Ends        dates.Clock `json:"ends"`
	Price       string      `json:"price"`
	EventLink   string      `json:"eventLink"`
	City        string      `json:"city"`

	// Optional repetition rule: the server expands the occurrence into one
	// event per generated date (weekly, biweekly or monthly until
	// RepeatUntil, inclusive).
	Repeat      string      `json:"repeat,omitempty"`
	RepeatUntil *dates.Date `json:"repeatUntil,omitempty"`
}

// EventView is what listings return: the event plus its derived county.
type EventView struct {
	Event
	County string `json:"county"`
}
