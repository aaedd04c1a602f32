package lawyers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository reads the lawyer directory.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a directory repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListActiveByArea returns active lawyers whose declared practice areas
// include the given area (exact string match).
func (r *Repository) ListActiveByArea(ctx context.Context, area string) ([]Lawyer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, oab_number, role, status, practice_areas
		FROM lawyers
		WHERE role = 'lawyer' AND status = 'active' AND $1 = ANY(practice_areas)
		ORDER BY id`, area)
	if err != nil {
		return nil, fmt.Errorf("lawyers: list by area: %w", err)
	}
	defer rows.Close()

	var out []Lawyer
	for rows.Next() {
		var l Lawyer
		if err := rows.Scan(&l.ID, &l.FirstName, &l.LastName, &l.OABNumber,
			&l.Role, &l.Status, pq.Array(&l.PracticeAreas)); err != nil {
			return nil, fmt.Errorf("lawyers: scan: %w", err)
		}
		l.Name = l.DisplayName()
		out = append(out, l)
	}
	if out == nil {
		out = []Lawyer{}
	}
	return out, rows.Err()
}

// GetContact resolves a directory entry to its email address and display
// name. Users outside the directory return sql.ErrNoRows.
func (r *Repository) GetContact(ctx context.Context, id string) (address, name string, err error) {
	var first, last string
	err = r.db.QueryRowContext(ctx, `
		SELECT email, first_name, last_name FROM lawyers WHERE id = $1`, id).
		Scan(&address, &first, &last)
	if err != nil {
		return "", "", fmt.Errorf("lawyers: contact for %s: %w", id, err)
	}
	return address, Lawyer{FirstName: first, LastName: last}.DisplayName(), nil
}
