package availability

import (
	"context"
	"fmt"
	"time"
)

// ScheduleStore is the persistence surface the service consumes.
type ScheduleStore interface {
	Put(ctx context.Context, lawyerID string, schedule WeeklySchedule) error
	Get(ctx context.Context, lawyerID string) (WeeklySchedule, error)
}

// OccupiedLookup reports booked times per date for a lawyer over a date
// range (inclusive). Implemented by the appointments repository.
type OccupiedLookup interface {
	OccupiedTimes(ctx context.Context, lawyerID, fromDate, toDate string) (map[string][]string, error)
}

// Service computes free slots from the weekly template and booked times.
type Service struct {
	store    ScheduleStore
	occupied OccupiedLookup
	location *time.Location
	horizon  int
	now      func() time.Time
}

// NewService creates the slot service. loc anchors "today" for horizon
// computation; nil falls back to UTC. horizonDays is the window used when a
// request does not ask for a specific number of days; non-positive values
// fall back to 7.
func NewService(store ScheduleStore, occupied OccupiedLookup, loc *time.Location, horizonDays int) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if horizonDays <= 0 {
		horizonDays = 7
	}
	return &Service{
		store:    store,
		occupied: occupied,
		location: loc,
		horizon:  horizonDays,
		now:      time.Now,
	}
}

// SetSchedule validates and stores a full schedule replacement.
func (s *Service) SetSchedule(ctx context.Context, lawyerID string, schedule WeeklySchedule) error {
	if lawyerID == "" {
		return ErrMissingLawyerID
	}
	if err := schedule.Validate(); err != nil {
		return err
	}
	return s.store.Put(ctx, lawyerID, schedule)
}

// Schedule returns the stored weekly template, empty when never configured.
func (s *Service) Schedule(ctx context.Context, lawyerID string) (WeeklySchedule, error) {
	if lawyerID == "" {
		return nil, ErrMissingLawyerID
	}
	return s.store.Get(ctx, lawyerID)
}

// FreeSlots returns free (date, hour) slots for the next horizonDays starting
// today, subtracting booked appointments from the weekly template.
func (s *Service) FreeSlots(ctx context.Context, lawyerID string, horizonDays int) (map[string][]string, error) {
	if lawyerID == "" {
		return nil, ErrMissingLawyerID
	}
	if horizonDays <= 0 {
		horizonDays = s.horizon
	}

	schedule, err := s.store.Get(ctx, lawyerID)
	if err != nil {
		return nil, err
	}
	if len(schedule) == 0 {
		return map[string][]string{}, nil
	}

	today := s.now().In(s.location)
	fromDate := today.Format(DateFormat)
	toDate := today.AddDate(0, 0, horizonDays-1).Format(DateFormat)

	occupied, err := s.occupied.OccupiedTimes(ctx, lawyerID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("availability: load booked times: %w", err)
	}

	return ComputeFreeSlots(schedule, occupied, today, horizonDays), nil
}
