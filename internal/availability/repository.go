package availability

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

// Repository persists lawyer weekly schedules.
type Repository struct {
	db DB
}

// NewRepository creates a repository backed by a pgx pool.
func NewRepository(db DB) *Repository {
	if db == nil {
		panic("availability: db required")
	}
	return &Repository{db: db}
}

// Put replaces the lawyer's schedule wholesale.
func (r *Repository) Put(ctx context.Context, lawyerID string, schedule WeeklySchedule) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO lawyer_availability (lawyer_id, weekly_schedule, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (lawyer_id) DO UPDATE
		SET weekly_schedule = EXCLUDED.weekly_schedule, updated_at = now()`,
		lawyerID, schedule)
	if err != nil {
		return fmt.Errorf("availability: put schedule: %w", err)
	}
	return nil
}

// Get returns the lawyer's schedule. An unknown lawyer yields an empty
// schedule, not an error; callers treat the two identically.
func (r *Repository) Get(ctx context.Context, lawyerID string) (WeeklySchedule, error) {
	var schedule WeeklySchedule
	err := r.db.QueryRow(ctx, `
		SELECT weekly_schedule FROM lawyer_availability WHERE lawyer_id = $1`,
		lawyerID).Scan(&schedule)
	if errors.Is(err, pgx.ErrNoRows) {
		return WeeklySchedule{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("availability: get schedule: %w", err)
	}
	if schedule == nil {
		schedule = WeeklySchedule{}
	}
	return schedule, nil
}

// GetMany loads schedules for several lawyers in one query. Lawyers without
// a stored schedule are simply absent from the result.
func (r *Repository) GetMany(ctx context.Context, lawyerIDs []string) (map[string]WeeklySchedule, error) {
	schedules := make(map[string]WeeklySchedule, len(lawyerIDs))
	if len(lawyerIDs) == 0 {
		return schedules, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT lawyer_id, weekly_schedule FROM lawyer_availability WHERE lawyer_id = ANY($1)`,
		lawyerIDs)
	if err != nil {
		return nil, fmt.Errorf("availability: get schedules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lawyerID string
		var schedule WeeklySchedule
		if err := rows.Scan(&lawyerID, &schedule); err != nil {
			return nil, fmt.Errorf("availability: scan schedule: %w", err)
		}
		schedules[lawyerID] = schedule
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("availability: get schedules: %w", err)
	}
	return schedules, nil
}
