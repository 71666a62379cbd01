package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danvoss/stride/internal/db"
	"github.com/danvoss/stride/internal/domain"
)

// phaseColumns is the canonical SELECT column list for phases.
const phaseColumns = `id, work_package_id, name, position,
		total_estimated_hours, phase_total_duration,
		estimated_start_date, estimated_end_date, actual_start_date, actual_end_date,
		status, created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(conn db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: conn}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (` + phaseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.WorkPackageID,
		p.Name,
		p.Position,
		p.TotalEstimatedHours,
		p.PhaseTotalDuration,
		nullableTimeToString(p.EstimatedStartDate, dateLayout),
		nullableTimeToString(p.EstimatedEndDate, dateLayout),
		nullableTimeToString(p.ActualStartDate, time.RFC3339),
		nullableTimeToString(p.ActualEndDate, time.RFC3339),
		string(p.Status),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanPhase(row)
}

func (r *SQLitePhaseRepo) ListByWorkPackage(ctx context.Context, workPackageID string) ([]*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE work_package_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, workPackageID)
	if err != nil {
		return nil, fmt.Errorf("listing phases by work package: %w", err)
	}
	defer rows.Close()
	return r.scanPhases(rows)
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.Phase) error {
	query := `UPDATE phases SET name = ?, position = ?,
		total_estimated_hours = ?, phase_total_duration = ?,
		estimated_start_date = ?, estimated_end_date = ?,
		actual_start_date = ?, actual_end_date = ?,
		status = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Position,
		p.TotalEstimatedHours,
		p.PhaseTotalDuration,
		nullableTimeToString(p.EstimatedStartDate, dateLayout),
		nullableTimeToString(p.EstimatedEndDate, dateLayout),
		nullableTimeToString(p.ActualStartDate, time.RFC3339),
		nullableTimeToString(p.ActualEndDate, time.RFC3339),
		string(p.Status),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return nil
}

// BatchUpdate writes every phase in position order. Atomicity comes from the
// caller constructing this repo over a transaction-scoped DBTX; the first
// failed write aborts the batch.
func (r *SQLitePhaseRepo) BatchUpdate(ctx context.Context, phases []*domain.Phase) error {
	for _, p := range phases {
		if err := r.Update(ctx, p); err != nil {
			return fmt.Errorf("batch updating phase %q: %w", p.Name, err)
		}
	}
	return nil
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM phases WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return nil
}

// scanPhase scans a single phase from a *sql.Row.
func (r *SQLitePhaseRepo) scanPhase(row *sql.Row) (*domain.Phase, error) {
	var p domain.Phase
	var statusStr, createdAtStr, updatedAtStr string
	var estStartStr, estEndStr, actStartStr, actEndStr sql.NullString

	err := row.Scan(
		&p.ID, &p.WorkPackageID, &p.Name, &p.Position,
		&p.TotalEstimatedHours, &p.PhaseTotalDuration,
		&estStartStr, &estEndStr, &actStartStr, &actEndStr,
		&statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}

	return r.populatePhase(&p, statusStr, estStartStr, estEndStr, actStartStr, actEndStr, createdAtStr, updatedAtStr)
}

// scanPhases scans multiple phases from *sql.Rows.
func (r *SQLitePhaseRepo) scanPhases(rows *sql.Rows) ([]*domain.Phase, error) {
	var phases []*domain.Phase
	for rows.Next() {
		var p domain.Phase
		var statusStr, createdAtStr, updatedAtStr string
		var estStartStr, estEndStr, actStartStr, actEndStr sql.NullString

		err := rows.Scan(
			&p.ID, &p.WorkPackageID, &p.Name, &p.Position,
			&p.TotalEstimatedHours, &p.PhaseTotalDuration,
			&estStartStr, &estEndStr, &actStartStr, &actEndStr,
			&statusStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}

		phase, err := r.populatePhase(&p, statusStr, estStartStr, estEndStr, actStartStr, actEndStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		phases = append(phases, phase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

// populatePhase fills in parsed fields on a Phase after scanning raw values.
func (r *SQLitePhaseRepo) populatePhase(
	p *domain.Phase,
	statusStr string,
	estStartStr, estEndStr, actStartStr, actEndStr sql.NullString,
	createdAtStr, updatedAtStr string,
) (*domain.Phase, error) {
	p.Status = domain.PhaseStatus(statusStr)

	p.EstimatedStartDate = parseNullableTime(estStartStr, dateLayout)
	p.EstimatedEndDate = parseNullableTime(estEndStr, dateLayout)
	p.ActualStartDate = parseNullableTime(actStartStr, time.RFC3339)
	p.ActualEndDate = parseNullableTime(actEndStr, time.RFC3339)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return p, nil
}
