package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danvoss/stride/internal/db"
	"github.com/danvoss/stride/internal/domain"
)

// workPackageColumns is the canonical SELECT column list for work_packages.
const workPackageColumns = `id, short_id, name, contact_id, effective_start_date,
		status, archived_at, created_at, updated_at`

// SQLiteWorkPackageRepo implements WorkPackageRepo using a SQLite database.
type SQLiteWorkPackageRepo struct {
	db db.DBTX
}

// NewSQLiteWorkPackageRepo creates a new SQLiteWorkPackageRepo.
func NewSQLiteWorkPackageRepo(conn db.DBTX) *SQLiteWorkPackageRepo {
	return &SQLiteWorkPackageRepo{db: conn}
}

func (r *SQLiteWorkPackageRepo) Create(ctx context.Context, w *domain.WorkPackage) error {
	query := `INSERT INTO work_packages (` + workPackageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.ShortID,
		w.Name,
		nullableStrToValue(w.ContactID),
		nullableTimeToString(w.EffectiveStartDate, dateLayout),
		string(w.Status),
		nullableTimeToString(w.ArchivedAt, time.RFC3339),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work package: %w", err)
	}
	return nil
}

func (r *SQLiteWorkPackageRepo) GetByID(ctx context.Context, id string) (*domain.WorkPackage, error) {
	query := `SELECT ` + workPackageColumns + ` FROM work_packages WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanWorkPackage(row)
}

func (r *SQLiteWorkPackageRepo) GetByShortID(ctx context.Context, shortID string) (*domain.WorkPackage, error) {
	query := `SELECT ` + workPackageColumns + ` FROM work_packages WHERE UPPER(short_id) = UPPER(?)`
	row := r.db.QueryRowContext(ctx, query, shortID)
	return r.scanWorkPackage(row)
}

func (r *SQLiteWorkPackageRepo) List(ctx context.Context, includeArchived bool) ([]*domain.WorkPackage, error) {
	query := `SELECT ` + workPackageColumns + ` FROM work_packages`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work packages: %w", err)
	}
	defer rows.Close()

	var packages []*domain.WorkPackage
	for rows.Next() {
		w, err := r.scanWorkPackageFromRows(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work packages: %w", err)
	}
	return packages, nil
}

func (r *SQLiteWorkPackageRepo) Update(ctx context.Context, w *domain.WorkPackage) error {
	query := `UPDATE work_packages SET short_id = ?, name = ?, contact_id = ?,
		effective_start_date = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		w.ShortID,
		w.Name,
		nullableStrToValue(w.ContactID),
		nullableTimeToString(w.EffectiveStartDate, dateLayout),
		string(w.Status),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work package: %w", err)
	}
	return nil
}

func (r *SQLiteWorkPackageRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE work_packages SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving work package: %w", err)
	}
	return nil
}

func (r *SQLiteWorkPackageRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM work_packages WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting work package: %w", err)
	}
	return nil
}

// scanWorkPackage scans a single work package from a *sql.Row.
func (r *SQLiteWorkPackageRepo) scanWorkPackage(row *sql.Row) (*domain.WorkPackage, error) {
	var w domain.WorkPackage
	var statusStr, createdAtStr, updatedAtStr string
	var contactIDStr, effectiveStartStr, archivedAtStr sql.NullString

	err := row.Scan(
		&w.ID, &w.ShortID, &w.Name, &contactIDStr, &effectiveStartStr,
		&statusStr, &archivedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work package: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work package: %w", err)
	}

	return r.populateWorkPackage(&w, statusStr, contactIDStr, effectiveStartStr, archivedAtStr, createdAtStr, updatedAtStr)
}

// scanWorkPackageFromRows scans a single work package row from *sql.Rows.
func (r *SQLiteWorkPackageRepo) scanWorkPackageFromRows(rows *sql.Rows) (*domain.WorkPackage, error) {
	var w domain.WorkPackage
	var statusStr, createdAtStr, updatedAtStr string
	var contactIDStr, effectiveStartStr, archivedAtStr sql.NullString

	err := rows.Scan(
		&w.ID, &w.ShortID, &w.Name, &contactIDStr, &effectiveStartStr,
		&statusStr, &archivedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning work package row: %w", err)
	}

	return r.populateWorkPackage(&w, statusStr, contactIDStr, effectiveStartStr, archivedAtStr, createdAtStr, updatedAtStr)
}

// populateWorkPackage fills in parsed fields after scanning raw values.
func (r *SQLiteWorkPackageRepo) populateWorkPackage(
	w *domain.WorkPackage,
	statusStr string,
	contactIDStr, effectiveStartStr, archivedAtStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.WorkPackage, error) {
	w.Status = domain.WorkPackageStatus(statusStr)

	if contactIDStr.Valid && contactIDStr.String != "" {
		id := contactIDStr.String
		w.ContactID = &id
	}
	w.EffectiveStartDate = parseNullableTime(effectiveStartStr, dateLayout)
	w.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)

	var parseErr error
	w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	w.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return w, nil
}
