package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists appointment records.
type Repository struct {
	db DB
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(db DB) *Repository {
	if db == nil {
		panic("appointments: db required")
	}
	return &Repository{db: db}
}

// Insert writes one appointment. The appointments table carries a unique
// index on (lawyer_id, date, time); the loser of a concurrent booking race
// gets ErrSlotTaken instead of a second record for the same slot.
func (r *Repository) Insert(ctx context.Context, appt Appointment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO appointments (appointment_id, lawyer_id, client_id, date, time, meeting_link, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		appt.AppointmentID, appt.LawyerID, appt.ClientID, appt.Date, appt.Time,
		appt.MeetingLink, appt.Status, appt.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("appointments: %s %s %s: %w", appt.LawyerID, appt.Date, appt.Time, ErrSlotTaken)
		}
		return fmt.Errorf("appointments: insert: %w", err)
	}
	return nil
}

// GetByID loads one appointment.
func (r *Repository) GetByID(ctx context.Context, appointmentID string) (*Appointment, error) {
	var appt Appointment
	err := r.db.QueryRow(ctx, `
		SELECT appointment_id, lawyer_id, client_id, date, time, meeting_link, status, created_at
		FROM appointments WHERE appointment_id = $1`,
		appointmentID).Scan(&appt.AppointmentID, &appt.LawyerID, &appt.ClientID,
		&appt.Date, &appt.Time, &appt.MeetingLink, &appt.Status, &appt.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("appointments: load %s: %w", appointmentID, err)
	}
	return &appt, nil
}

// OccupiedTimes returns booked times per date for a lawyer over an inclusive
// date range, in one query rather than one per date.
func (r *Repository) OccupiedTimes(ctx context.Context, lawyerID, fromDate, toDate string) (map[string][]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT date, time FROM appointments
		WHERE lawyer_id = $1 AND date >= $2 AND date <= $3`,
		lawyerID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("appointments: occupied times: %w", err)
	}
	defer rows.Close()

	occupied := make(map[string][]string)
	for rows.Next() {
		var date, hour string
		if err := rows.Scan(&date, &hour); err != nil {
			return nil, fmt.Errorf("appointments: scan occupied time: %w", err)
		}
		occupied[date] = append(occupied[date], hour)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: occupied times: %w", err)
	}
	return occupied, nil
}
