package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillPositions(db); err != nil {
		return fmt.Errorf("backfilling phase positions: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		company    TEXT NOT NULL DEFAULT '',
		stage      TEXT NOT NULL DEFAULT 'lead'
		           CHECK(stage IN ('lead','qualified','proposal','client','dormant')),
		notes      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_packages (
		id                   TEXT PRIMARY KEY,
		short_id             TEXT NOT NULL DEFAULT '',
		name                 TEXT NOT NULL,
		contact_id           TEXT REFERENCES contacts(id) ON DELETE SET NULL,
		effective_start_date TEXT,
		status               TEXT NOT NULL DEFAULT 'active'
		                     CHECK(status IN ('active','archived')),
		archived_at          TEXT,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id                    TEXT PRIMARY KEY,
		work_package_id       TEXT NOT NULL REFERENCES work_packages(id) ON DELETE CASCADE,
		name                  TEXT NOT NULL,
		position              INTEGER NOT NULL,
		total_estimated_hours REAL NOT NULL DEFAULT 0,
		phase_total_duration  INTEGER NOT NULL DEFAULT 0 CHECK(phase_total_duration >= 0),
		estimated_start_date  TEXT,
		estimated_end_date    TEXT,
		actual_start_date     TEXT,
		actual_end_date       TEXT,
		status                TEXT NOT NULL DEFAULT 'not_started'
		                      CHECK(status IN ('not_started','in_progress','completed')),
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL,
		UNIQUE(work_package_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		id                   TEXT PRIMARY KEY,
		phase_id             TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		name                 TEXT NOT NULL,
		quantity             INTEGER NOT NULL DEFAULT 1 CHECK(quantity >= 0),
		estimated_hours_each REAL NOT NULL DEFAULT 0 CHECK(estimated_hours_each >= 0),
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_work_package ON phases(work_package_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_phase ON items(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_packages_contact ON work_packages(contact_id)`,
}

// migrateBackfillPositions assigns positions to phases imported by older
// builds that stored 0 for every row. Rows are renumbered per work package
// in insertion order.
func migrateBackfillPositions(db *sql.DB) error {
	rows, err := db.Query(`SELECT work_package_id FROM phases
		GROUP BY work_package_id
		HAVING COUNT(*) > 1 AND COUNT(DISTINCT position) = 1 AND MIN(position) = 0`)
	if err != nil {
		return fmt.Errorf("finding unpositioned phase sets: %w", err)
	}
	defer rows.Close()

	var packageIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scanning work package id: %w", err)
		}
		packageIDs = append(packageIDs, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating work package ids: %w", err)
	}

	for _, pkgID := range packageIDs {
		if _, err := db.Exec(`UPDATE phases SET position = (
			SELECT COUNT(*) FROM phases p2
			WHERE p2.work_package_id = phases.work_package_id
			  AND p2.rowid <= phases.rowid
		) WHERE work_package_id = ?`, pkgID); err != nil {
			return fmt.Errorf("renumbering phases for %s: %w", pkgID, err)
		}
	}
	return nil
}
