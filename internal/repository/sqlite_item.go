package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danvoss/stride/internal/db"
	"github.com/danvoss/stride/internal/domain"
)

const itemColumns = `id, phase_id, name, quantity, estimated_hours_each, created_at, updated_at`

// SQLiteItemRepo implements ItemRepo using a SQLite database.
type SQLiteItemRepo struct {
	db db.DBTX
}

// NewSQLiteItemRepo creates a new SQLiteItemRepo.
func NewSQLiteItemRepo(conn db.DBTX) *SQLiteItemRepo {
	return &SQLiteItemRepo{db: conn}
}

func (r *SQLiteItemRepo) Create(ctx context.Context, i *domain.Item) error {
	query := `INSERT INTO items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		i.ID,
		i.PhaseID,
		i.Name,
		i.Quantity,
		i.EstimatedHoursEach,
		i.CreatedAt.Format(time.RFC3339),
		i.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	i, err := r.scanItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("item: %w", ErrNotFound)
		}
		return nil, err
	}
	return i, nil
}

func (r *SQLiteItemRepo) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE phase_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, phaseID)
	if err != nil {
		return nil, fmt.Errorf("listing items by phase: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		i, err := r.scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// SumHoursByPhase aggregates quantity * estimated_hours_each for a phase.
// A phase with no items sums to zero.
func (r *SQLiteItemRepo) SumHoursByPhase(ctx context.Context, phaseID string) (float64, error) {
	query := `SELECT COALESCE(SUM(quantity * estimated_hours_each), 0) FROM items WHERE phase_id = ?`
	var hours float64
	if err := r.db.QueryRowContext(ctx, query, phaseID).Scan(&hours); err != nil {
		return 0, fmt.Errorf("summing item hours: %w", err)
	}
	return hours, nil
}

func (r *SQLiteItemRepo) Update(ctx context.Context, i *domain.Item) error {
	query := `UPDATE items SET name = ?, quantity = ?, estimated_hours_each = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		i.Name,
		i.Quantity,
		i.EstimatedHoursEach,
		i.UpdatedAt.Format(time.RFC3339),
		i.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM items WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

func (r *SQLiteItemRepo) scanItem(scan func(dest ...any) error) (*domain.Item, error) {
	var i domain.Item
	var createdAtStr, updatedAtStr string

	err := scan(&i.ID, &i.PhaseID, &i.Name, &i.Quantity, &i.EstimatedHoursEach, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	var parseErr error
	i.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	i.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &i, nil
}
