package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMigrate_Idempotent(t *testing.T) {
	database := openTestDB(t)

	// OpenDB already migrated; a second and third run must be harmless.
	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))

	var count int
	err := database.QueryRow(`SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('contacts', 'work_packages', 'phases', 'items')`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMigrate_BackfillsZeroPositions(t *testing.T) {
	database := openTestDB(t)

	_, err := database.Exec(`INSERT INTO work_packages (id, name, created_at, updated_at)
		VALUES ('wp1', 'Legacy Deal', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	// Simulate a database created by an older build: no unique constraint on
	// (work_package_id, position) and every row stored with position 0.
	_, err = database.Exec(`DROP TABLE phases`)
	require.NoError(t, err)
	_, err = database.Exec(`CREATE TABLE phases (
		id              TEXT PRIMARY KEY,
		work_package_id TEXT NOT NULL REFERENCES work_packages(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		position        INTEGER NOT NULL,
		status          TEXT NOT NULL DEFAULT 'not_started',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`)
	require.NoError(t, err)
	insert := `INSERT INTO phases (id, work_package_id, name, position, created_at, updated_at)
		VALUES (?, 'wp1', ?, 0, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`
	_, err = database.Exec(insert, "ph1", "Discovery")
	require.NoError(t, err)
	_, err = database.Exec(insert, "ph2", "Build")
	require.NoError(t, err)

	require.NoError(t, Migrate(database))

	rows, err := database.Query(`SELECT id, position FROM phases WHERE work_package_id = 'wp1' ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()

	positions := map[string]int{}
	for rows.Next() {
		var id string
		var pos int
		require.NoError(t, rows.Scan(&id, &pos))
		positions[id] = pos
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]int{"ph1": 1, "ph2": 2}, positions)
}

func TestOpenDB_EnforcesForeignKeys(t *testing.T) {
	database := openTestDB(t)

	_, err := database.Exec(`INSERT INTO phases (id, work_package_id, name, position, status, created_at, updated_at)
		VALUES ('ph1', 'no-such-package', 'Orphan', 1, 'not_started', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)
}
