package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/pocket-pastor/internal/database"
	"github.com/taiwoajasa245/pocket-pastor/internal/database/dbtest"
)

func TestMigrationNamesAreOrdered(t *testing.T) {
	names, err := database.MigrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_reader.up.sql", names[0])
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestHealth(t *testing.T) {
	srv := dbtest.Start(t)

	stats := srv.Health()
	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "It's healthy", stats["message"])
}

func TestMigrateIsRepeatable(t *testing.T) {
	srv := dbtest.Start(t)

	require.NoError(t, srv.Migrate(context.Background()))

	var n int
	err := srv.DB().QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n)
	require.NoError(t, err)
	names, _ := database.MigrationNames()
	assert.Equal(t, len(names), n)
}
