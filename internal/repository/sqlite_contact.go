package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danvoss/stride/internal/db"
	"github.com/danvoss/stride/internal/domain"
)

const contactColumns = `id, name, email, company, stage, notes, created_at, updated_at`

// SQLiteContactRepo implements ContactRepo using a SQLite database.
type SQLiteContactRepo struct {
	db db.DBTX
}

// NewSQLiteContactRepo creates a new SQLiteContactRepo.
func NewSQLiteContactRepo(conn db.DBTX) *SQLiteContactRepo {
	return &SQLiteContactRepo{db: conn}
}

func (r *SQLiteContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	query := `INSERT INTO contacts (` + contactColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Company,
		string(c.Stage),
		c.Notes,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	return nil
}

func (r *SQLiteContactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanContact(row.Scan)
}

func (r *SQLiteContactRepo) List(ctx context.Context) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()
	return r.scanContacts(rows)
}

func (r *SQLiteContactRepo) ListByStage(ctx context.Context, stage domain.ContactStage) ([]*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE stage = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, string(stage))
	if err != nil {
		return nil, fmt.Errorf("listing contacts by stage: %w", err)
	}
	defer rows.Close()
	return r.scanContacts(rows)
}

func (r *SQLiteContactRepo) Update(ctx context.Context, c *domain.Contact) error {
	query := `UPDATE contacts SET name = ?, email = ?, company = ?, stage = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.Email,
		c.Company,
		string(c.Stage),
		c.Notes,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}
	return nil
}

func (r *SQLiteContactRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM contacts WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	return nil
}

func (r *SQLiteContactRepo) scanContact(scan func(dest ...any) error) (*domain.Contact, error) {
	var c domain.Contact
	var stageStr, createdAtStr, updatedAtStr string

	err := scan(&c.ID, &c.Name, &c.Email, &c.Company, &stageStr, &c.Notes, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("contact: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning contact: %w", err)
	}

	c.Stage = domain.ContactStage(stageStr)

	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &c, nil
}

func (r *SQLiteContactRepo) scanContacts(rows *sql.Rows) ([]*domain.Contact, error) {
	var contacts []*domain.Contact
	for rows.Next() {
		c, err := r.scanContact(rows.Scan)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}
	return contacts, nil
}
