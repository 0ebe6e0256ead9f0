package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(unique))
	assert.False(t, isForeignKeyViolation(errors.New("boom")))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
	assert.Equal(t, "coke", escapeLike("coke"))
}

func TestMigrationsEmbebidas(t *testing.T) {
	body, err := migrationFS.ReadFile("migrations/001_init.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(body), "inventory_batches")
	assert.Contains(t, string(body), "ON DELETE CASCADE")
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "-- +goose Down")
	assert.Contains(t, string(body), "'voided'")
}
