package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"tangokultura/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateEvent(event models.Event) error {
	_, err := d.Bun.NewInsert().Model(&event).Exec(context.Background())
	return err
}

func (d *DB) GetEventByID(id string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (d *DB) UpdateEvent(event models.Event) error {
	res, err := d.Bun.NewUpdate().
		Model(&event).
		Column("event_name", "type_event", "description", "organizer", "address",
			"date", "ends_date", "starts", "ends", "price", "event_link", "city").
		Where("id = ?", event.ID).
		Exec(context.Background())
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (d *DB) DeleteEvent(id string) error {
	res, err := d.Bun.NewDelete().
		Model((*models.Event)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (d *DB) ListEvents() ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return events, nil
}
