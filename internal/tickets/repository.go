package tickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists consultation tickets.
type Repository struct {
	db DB
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(db DB) *Repository {
	if db == nil {
		panic("tickets: db required")
	}
	return &Repository{db: db}
}

const ticketColumns = `ticket_id, user_id, lawyer_id, text, area, summary, explanation,
		answer_ai, type, status, day, hour, appointment_id, meeting_link, created_at`

// Insert writes one ticket record.
func (r *Repository) Insert(ctx context.Context, t Ticket) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tickets (`+ticketColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		t.TicketID, t.UserID, t.LawyerID, t.Text, t.Area, t.Summary, t.Explanation,
		t.AnswerAI, t.Type, t.Status, t.Day, t.Hour, t.AppointmentID, t.MeetingLink, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("tickets: insert: %w", err)
	}
	return nil
}

// GetByID loads one ticket.
func (r *Repository) GetByID(ctx context.Context, ticketID string) (*Ticket, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ticket_id = $1`, ticketID)
	t, err := scanTicket(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tickets: load %s: %w", ticketID, err)
	}
	return t, nil
}

// ListByLawyer returns the lawyer's tickets, newest first.
func (r *Repository) ListByLawyer(ctx context.Context, lawyerID string) ([]Ticket, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ticketColumns+` FROM tickets WHERE lawyer_id = $1 ORDER BY created_at DESC`,
		lawyerID)
	if err != nil {
		return nil, fmt.Errorf("tickets: list by lawyer: %w", err)
	}
	defer rows.Close()

	out := []Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("tickets: scan: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// UpdateStatus moves a ticket through the panel workflow.
func (r *Repository) UpdateStatus(ctx context.Context, ticketID, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE tickets SET status = $2 WHERE ticket_id = $1`, ticketID, status)
	if err != nil {
		return fmt.Errorf("tickets: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*Ticket, error) {
	var t Ticket
	err := row.Scan(&t.TicketID, &t.UserID, &t.LawyerID, &t.Text, &t.Area, &t.Summary,
		&t.Explanation, &t.AnswerAI, &t.Type, &t.Status, &t.Day, &t.Hour,
		&t.AppointmentID, &t.MeetingLink, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
