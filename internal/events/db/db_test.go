package db_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"tangokultura/internal/dates"
	"tangokultura/internal/events/db"
	"tangokultura/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	if err := bunDB.ResetModel(context.Background(), (*models.Event)(nil)); err != nil {
		t.Fatalf("Failed to create events table: %v", err)
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func sampleEvent(t *testing.T, id, dateStr string) models.Event {
	t.Helper()
	date, err := dates.ParseDate(dateStr)
	if err != nil {
		t.Fatalf("bad date %q: %v", dateStr, err)
	}
	starts, _ := dates.ParseClock("20:00")
	ends, _ := dates.ParseClock("23:30")

	return models.Event{
		ID:          id,
		EventName:   "Milonga at " + id,
		TypeEvent:   models.TypeMilonga,
		Description: "A lovely evening",
		Organizer:   "Tango Club",
		Address:     "Main St 1",
		Date:        date,
		Starts:      starts,
		Ends:        ends,
		Price:       "150",
		EventLink:   "https://example.org/" + id,
		City:        "Oslo",
		CreatedBy:   "owner@example.com",
	}
}

func TestCreateAndGetEvent(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	event := sampleEvent(t, "evt1", "05-03-2026")
	assert.NoError(t, eventDB.CreateEvent(event))

	got, err := eventDB.GetEventByID("evt1")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "evt1", got.ID)
	assert.Equal(t, "owner@example.com", got.CreatedBy)

	// The wire format must survive the round-trip exactly.
	assert.Equal(t, "05-03-2026", got.Date.String())
	assert.Equal(t, "20:00", got.Starts.String())

	_, err = eventDB.GetEventByID("missing")
	assert.ErrorIs(t, err, db.ErrEventNotFound)
}

func TestEndsDateNullable(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	event := sampleEvent(t, "evt1", "05-03-2026")
	assert.Nil(t, event.EndsDate)
	assert.NoError(t, eventDB.CreateEvent(event))

	got, err := eventDB.GetEventByID("evt1")
	assert.NoError(t, err)
	assert.Nil(t, got.EndsDate)

	courseEnd, _ := dates.ParseDate("30-04-2026")
	course := sampleEvent(t, "course1", "05-03-2026")
	course.TypeEvent = models.TypeCourse
	course.EndsDate = &courseEnd
	assert.NoError(t, eventDB.CreateEvent(course))

	got, err = eventDB.GetEventByID("course1")
	assert.NoError(t, err)
	if assert.NotNil(t, got.EndsDate) {
		assert.Equal(t, "30-04-2026", got.EndsDate.String())
	}
}

func TestUpdateEvent(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	event := sampleEvent(t, "evt1", "05-03-2026")
	assert.NoError(t, eventDB.CreateEvent(event))

	event.EventName = "Renamed"
	event.City = "Bergen"
	// A changed CreatedBy must not be written: the column is not updatable.
	event.CreatedBy = "intruder@example.com"
	assert.NoError(t, eventDB.UpdateEvent(event))

	got, err := eventDB.GetEventByID("evt1")
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", got.EventName)
	assert.Equal(t, "Bergen", got.City)
	assert.Equal(t, "owner@example.com", got.CreatedBy)
}

func TestUpdateMissingEvent(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	event := sampleEvent(t, "ghost", "05-03-2026")
	err := eventDB.UpdateEvent(event)
	assert.ErrorIs(t, err, db.ErrEventNotFound)
}

func TestDeleteEvent(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	event := sampleEvent(t, "evt1", "05-03-2026")
	assert.NoError(t, eventDB.CreateEvent(event))

	assert.NoError(t, eventDB.DeleteEvent("evt1"))

	_, err := eventDB.GetEventByID("evt1")
	assert.ErrorIs(t, err, db.ErrEventNotFound)

	// Deleting again reports not found, not silent success.
	assert.ErrorIs(t, eventDB.DeleteEvent("evt1"), db.ErrEventNotFound)
}

func TestListEvents(t *testing.T) {
	eventDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	assert.NoError(t, eventDB.CreateEvent(sampleEvent(t, "evt1", "05-03-2026")))
	assert.NoError(t, eventDB.CreateEvent(sampleEvent(t, "evt2", "06-03-2026")))

	all, err := eventDB.ListEvents()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
