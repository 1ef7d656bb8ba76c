package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"tangokultura/internal/config"
	"tangokultura/internal/county"
	"tangokultura/internal/dates"
	"tangokultura/internal/events/db"
	"tangokultura/internal/logger"
	"tangokultura/internal/models"
	"tangokultura/internal/utils"
)

var (
	ErrInvalidPayload = errors.New("invalid event payload")
	ErrForbidden      = errors.New("not allowed to modify this event")
)

type EventDBLayer interface {
	CreateEvent(event models.Event) error
	GetEventByID(id string) (*models.Event, error)
	UpdateEvent(event models.Event) error
	DeleteEvent(id string) error
	ListEvents() ([]models.Event, error)
}

type Publisher interface {
	Publish(topic string, key string, value []byte) error
}

// Filters are the listing query parameters. Zero values mean the defaults
// documented on GET /api/events: eventType "Events", upcoming courses.
type Filters struct {
	EventType       string
	SubEventType    string
	County          string
	UpcomingCourses bool
}

type EventService struct {
	DB       EventDBLayer
	Producer Publisher
	Topics   config.TopicConfig
	Logger   *logger.Logger
}

func NewEventService(database EventDBLayer, producer Publisher, topics config.TopicConfig, log *logger.Logger) *EventService {
	return &EventService{
		DB:       database,
		Producer: producer,
		Topics:   topics,
		Logger:   log,
	}
}

// ListEvents is the read path: past and unparseable dates are dropped, the
// county is derived from the city, then county and category filters apply,
// and the result is sorted by date and start time.
func (s *EventService) ListEvents(filters Filters) ([]models.EventView, error) {
	all, err := s.DB.ListEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	if filters.EventType == "" {
		filters.EventType = "Events"
	}

	today := dates.Today()

	var retained []models.Event
	for _, e := range all {
		if e.Date.IsZero() || e.Date.Before(today) {
			continue
		}
		retained = append(retained, e)
	}

	views := make([]models.EventView, 0, len(retained))
	for _, e := range retained {
		views = append(views, models.EventView{
			Event:  e,
			County: county.CountyFor(e.City),
		})
	}

	if filters.County != "" && filters.County != "All" {
		filtered := views[:0]
		for _, v := range views {
			if strings.EqualFold(v.County, filters.County) {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	views = applyCategoryFilter(views, filters, today)

	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].Date.Equal(views[j].Date) {
			return views[i].Date.Before(views[j].Date)
		}
		return views[i].Starts.Before(views[j].Starts)
	})

	return views, nil
}

// applyCategoryFilter narrows by sub-event type first, then by the primary
// event type group. The priority order matters: an explicit subEventType
// always wins over eventType.
func applyCategoryFilter(views []models.EventView, filters Filters, today dates.Date) []models.EventView {
	keep := func(pred func(models.EventView) bool) []models.EventView {
		out := views[:0]
		for _, v := range views {
			if pred(v) {
				out = append(out, v)
			}
		}
		return out
	}

	switch {
	case filters.SubEventType == models.TypeClass:
		return keep(func(v models.EventView) bool { return v.TypeEvent == models.TypeClass })

	case filters.SubEventType == models.TypeCourse:
		if filters.UpcomingCourses {
			return keep(func(v models.EventView) bool {
				return v.TypeEvent == models.TypeCourse && v.Date.After(today)
			})
		}
		return keep(func(v models.EventView) bool {
			return v.TypeEvent == models.TypeCourse && !v.Date.After(today)
		})

	case filters.EventType == "Classes":
		return keep(func(v models.EventView) bool { return v.TypeEvent == models.TypeClass })

	case filters.EventType == "Events":
		return keep(func(v models.EventView) bool {
			switch v.TypeEvent {
			case models.TypeMilonga, models.TypeConcert, models.TypePractice, models.TypeClass:
				return true
			case models.TypeCourse:
				return !v.Date.Before(today)
			default:
				return false
			}
		})
	}

	return views
}

func validateInput(input models.EventInput) error {
	switch input.TypeEvent {
	case models.TypeMilonga, models.TypePractice, models.TypeClass, models.TypeCourse, models.TypeConcert:
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidPayload, input.TypeEvent)
	}
	if strings.TrimSpace(input.EventName) == "" {
		return fmt.Errorf("%w: event name is required", ErrInvalidPayload)
	}
	if strings.TrimSpace(input.City) == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidPayload)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidPayload)
	}
	if input.Starts.IsZero() || input.Ends.IsZero() {
		return fmt.Errorf("%w: starts and ends are required", ErrInvalidPayload)
	}
	if !input.Ends.After(input.Starts) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidPayload)
	}
	if input.EndsDate != nil && input.EndsDate.Before(input.Date) {
		return fmt.Errorf("%w: ends date cannot be before start date", ErrInvalidPayload)
	}
	return nil
}

// expandRepetitions replaces each input carrying a repetition rule with one
// input per generated date. Inputs without a rule pass through unchanged.
func expandRepetitions(inputs []models.EventInput) ([]models.EventInput, error) {
	out := make([]models.EventInput, 0, len(inputs))
	for _, input := range inputs {
		rule, err := dates.ParseRule(input.Repeat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}

		until := dates.Date{}
		if input.RepeatUntil != nil {
			until = *input.RepeatUntil
		}

		for _, d := range dates.ExpandRepetitions(input.Date, rule, until) {
			occurrence := input
			occurrence.Date = d
			occurrence.Repeat = ""
			occurrence.RepeatUntil = nil
			out = append(out, occurrence)
		}
	}
	return out, nil
}

// canMutate is the single authorization gate: the creator (case-insensitive
// email match) or an admin-role principal may modify an event.
func canMutate(event *models.Event, principal models.Principal) bool {
	if strings.EqualFold(event.CreatedBy, principal.Email) {
		return true
	}
	return principal.IsAdmin()
}

// CreateEvents persists a batch of one or more events. CreatedBy is always
// stamped from the principal, never taken from the payload. The batch is not
// atomic: events created before a failure stay created.
func (s *EventService) CreateEvents(inputs []models.EventInput, principal models.Principal) ([]models.Event, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no events to add", ErrInvalidPayload)
	}

	for _, input := range inputs {
		if err := validateInput(input); err != nil {
			return nil, err
		}
	}

	expanded, err := expandRepetitions(inputs)
	if err != nil {
		return nil, err
	}

	created := make([]models.Event, 0, len(expanded))
	for _, input := range expanded {
		event := models.Event{
			ID:          utils.GenerateEventID(),
			EventName:   input.EventName,
			TypeEvent:   input.TypeEvent,
			Description: input.Description,
			Organizer:   input.Organizer,
			Address:     input.Address,
			Date:        input.Date,
			EndsDate:    input.EndsDate,
			Starts:      input.Starts,
			Ends:        input.Ends,
			Price:       input.Price,
			EventLink:   input.EventLink,
			City:        input.City,
			CreatedBy:   principal.Email,
		}

		if err := s.DB.CreateEvent(event); err != nil {
			return created, fmt.Errorf("failed to create event: %w", err)
		}
		s.Logger.LogEvent("CREATE", event.ID, fmt.Sprintf("created by %s", principal.Email))
		s.publish(s.Topics.EventCreated, event)
		created = append(created, event)
	}

	return created, nil
}

// UpdateEvent overwrites exactly the mutable fields. ID and CreatedBy are
// never touched, whatever the payload says.
func (s *EventService) UpdateEvent(id string, input models.EventInput, principal models.Principal) (*models.Event, error) {
	event, err := s.DB.GetEventByID(id)
	if err != nil {
		return nil, fmt.Errorf("event %s not found: %w", id, err)
	}

	if !canMutate(event, principal) {
		return nil, fmt.Errorf("%w: event %s", ErrForbidden, id)
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	event.EventName = input.EventName
	event.TypeEvent = input.TypeEvent
	event.Description = input.Description
	event.Organizer = input.Organizer
	event.Address = input.Address
	event.Date = input.Date
	event.EndsDate = input.EndsDate
	event.Starts = input.Starts
	event.Ends = input.Ends
	event.Price = input.Price
	event.EventLink = input.EventLink
	event.City = input.City

	if err := s.DB.UpdateEvent(*event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.Logger.LogEvent("UPDATE", event.ID, fmt.Sprintf("updated by %s", principal.Email))
	s.publish(s.Topics.EventUpdated, *event)
	return event, nil
}

func (s *EventService) DeleteEvent(id string, principal models.Principal) error {
	event, err := s.DB.GetEventByID(id)
	if err != nil {
		return fmt.Errorf("event %s not found: %w", id, err)
	}

	if !canMutate(event, principal) {
		return fmt.Errorf("%w: event %s", ErrForbidden, id)
	}

	if err := s.DB.DeleteEvent(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.Logger.LogEvent("DELETE", event.ID, fmt.Sprintf("deleted by %s", principal.Email))
	s.publish(s.Topics.EventDeleted, *event)
	return nil
}

// GetEvent returns a single stored event (used by the QR endpoint).
func (s *EventService) GetEvent(id string) (*models.Event, error) {
	event, err := s.DB.GetEventByID(id)
	if err != nil {
		return nil, fmt.Errorf("event %s not found: %w", id, err)
	}
	return event, nil
}

func (s *EventService) publish(topic string, event models.Event) {
	if s.Producer == nil || topic == "" {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to marshal event %s: %v", event.ID, err))
		return
	}
	if err := s.Producer.Publish(topic, event.ID, value); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish to %s: %v", topic, err))
	}
}

// IsNotFound reports whether err comes from a missing event id.
func IsNotFound(err error) bool {
	return errors.Is(err, db.ErrEventNotFound)
}
