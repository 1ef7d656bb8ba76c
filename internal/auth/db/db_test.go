package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"tangokultura/internal/auth/db"
	"tangokultura/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	if err := bunDB.ResetModel(context.Background(), (*models.User)(nil)); err != nil {
		t.Fatalf("Failed to create users table: %v", err)
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func TestCreateAndGetUser(t *testing.T) {
	userDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	user := models.User{
		ID:           uuid.New().String(),
		Email:        "dancer@example.com",
		PasswordHash: []byte("hash"),
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}
	assert.NoError(t, userDB.CreateUser(user))

	got, err := userDB.GetUserByEmail("dancer@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, models.RoleUser, got.Role)

	_, err = userDB.GetUserByEmail("ghost@example.com")
	assert.ErrorIs(t, err, db.ErrUserNotFound)
}

func TestDuplicateEmailRejected(t *testing.T) {
	userDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	first := models.User{
		ID:           uuid.New().String(),
		Email:        "dancer@example.com",
		PasswordHash: []byte("hash"),
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}
	assert.NoError(t, userDB.CreateUser(first))

	second := first
	second.ID = uuid.New().String()
	assert.Error(t, userDB.CreateUser(second))
}
