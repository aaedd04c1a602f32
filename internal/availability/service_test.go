package availability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeScheduleStore struct {
	schedules map[string]WeeklySchedule
	putErr    error
}

func (f *fakeScheduleStore) Put(_ context.Context, lawyerID string, schedule WeeklySchedule) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.schedules == nil {
		f.schedules = map[string]WeeklySchedule{}
	}
	f.schedules[lawyerID] = schedule
	return nil
}

func (f *fakeScheduleStore) Get(_ context.Context, lawyerID string) (WeeklySchedule, error) {
	if s, ok := f.schedules[lawyerID]; ok {
		return s, nil
	}
	return WeeklySchedule{}, nil
}

type fakeOccupiedLookup struct {
	occupied map[string][]string
	err      error
}

func (f *fakeOccupiedLookup) OccupiedTimes(context.Context, string, string, string) (map[string][]string, error) {
	return f.occupied, f.err
}

func newTestService(store *fakeScheduleStore, occupied *fakeOccupiedLookup) *Service {
	svc := NewService(store, occupied, time.UTC, 0)
	svc.now = func() time.Time { return monday }
	return svc
}

func TestSetScheduleValidates(t *testing.T) {
	store := &fakeScheduleStore{}
	svc := newTestService(store, &fakeOccupiedLookup{})

	err := svc.SetSchedule(context.Background(), "lawyer-1", WeeklySchedule{"monday": {"25:00"}})
	if !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}

	if err := svc.SetSchedule(context.Background(), "", WeeklySchedule{}); !errors.Is(err, ErrMissingLawyerID) {
		t.Fatalf("expected ErrMissingLawyerID, got %v", err)
	}

	if err := svc.SetSchedule(context.Background(), "lawyer-1", WeeklySchedule{"monday": {"09:00"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.schedules["lawyer-1"]["monday"]) != 1 {
		t.Fatal("schedule not stored")
	}
}

func TestFreeSlotsSubtractsBookings(t *testing.T) {
	store := &fakeScheduleStore{schedules: map[string]WeeklySchedule{
		"lawyer-1": {"monday": {"09:00", "10:00"}},
	}}
	occupied := &fakeOccupiedLookup{occupied: map[string][]string{
		"2024-01-01": {"09:00"},
	}}
	svc := newTestService(store, occupied)

	slots, err := svc.FreeSlots(context.Background(), "lawyer-1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := slots["2024-01-01"]; len(got) != 1 || got[0] != "10:00" {
		t.Fatalf("expected [10:00], got %v", got)
	}
}

func TestFreeSlotsUnknownLawyer(t *testing.T) {
	svc := newTestService(&fakeScheduleStore{}, &fakeOccupiedLookup{})

	slots, err := svc.FreeSlots(context.Background(), "never-configured", 7)
	if err != nil {
		t.Fatalf("unknown lawyer must not error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestFreeSlotsDefaultHorizon(t *testing.T) {
	store := &fakeScheduleStore{schedules: map[string]WeeklySchedule{
		"lawyer-1": {"monday": {"09:00"}},
	}}
	svc := newTestService(store, &fakeOccupiedLookup{})

	slots, err := svc.FreeSlots(context.Background(), "lawyer-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Default 7-day horizon starting Monday covers exactly one Monday.
	if len(slots) != 1 {
		t.Fatalf("expected one date with slots, got %v", slots)
	}
}

func TestFreeSlotsConfiguredHorizon(t *testing.T) {
	store := &fakeScheduleStore{schedules: map[string]WeeklySchedule{
		"lawyer-1": {"monday": {"09:00"}},
	}}
	svc := NewService(store, &fakeOccupiedLookup{}, time.UTC, 14)
	svc.now = func() time.Time { return monday }

	slots, err := svc.FreeSlots(context.Background(), "lawyer-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A 14-day window starting Monday covers two Mondays.
	if len(slots) != 2 {
		t.Fatalf("expected two dates with slots, got %v", slots)
	}
}

func TestFreeSlotsOccupiedLookupFailure(t *testing.T) {
	store := &fakeScheduleStore{schedules: map[string]WeeklySchedule{
		"lawyer-1": {"monday": {"09:00"}},
	}}
	svc := newTestService(store, &fakeOccupiedLookup{err: errors.New("db down")})

	if _, err := svc.FreeSlots(context.Background(), "lawyer-1", 7); err == nil {
		t.Fatal("expected error when booked-times lookup fails")
	}
}
