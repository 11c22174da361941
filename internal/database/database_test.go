package database_test

import (
	"bytes"
	"context"
	"testing"

	"productapi/internal/config"
	"productapi/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:open_test?mode=memory&cache=shared",
	}, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable("products"))
	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverMemory}, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported SQL driver")
	assert.Nil(t, db)
}

func TestPing_AfterClose(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:closed_test?mode=memory&cache=shared",
	}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, database.Close(db))
	assert.Error(t, database.Ping(context.Background(), db))
}

func TestOpen_LogsFailedQueriesAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:log_test?mode=memory&cache=shared",
	}, logger)
	require.NoError(t, err)
	defer database.Close(db)

	err = db.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)

	assert.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"component":"gorm"`)
	assert.Contains(t, buf.String(), "no_such_table")
}
