package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/juridia/juridia-platform/internal/reminder"
	"github.com/juridia/juridia-platform/pkg/logging"
)

type fakeSequence struct {
	next int64
	err  error
}

func (f *fakeSequence) Next(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprint(atomic.AddInt64(&f.next, 1)), nil
}

type fakeStore struct {
	mu    sync.Mutex
	appts []Appointment
	slots map[string]struct{}
	err   error
}

func (f *fakeStore) Insert(_ context.Context, appt Appointment) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := appt.LawyerID + "#" + appt.Date + "#" + appt.Time
	if f.slots == nil {
		f.slots = map[string]struct{}{}
	}
	if _, taken := f.slots[key]; taken {
		return fmt.Errorf("appointments: %s: %w", key, ErrSlotTaken)
	}
	f.slots[key] = struct{}{}
	f.appts = append(f.appts, appt)
	return nil
}

type fakeDispatcher struct {
	mu    sync.Mutex
	tasks []reminder.Task
	err   error
}

func (f *fakeDispatcher) Register(_ context.Context, task reminder.Task) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return nil
}

var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func newTestScheduler(seq Sequence, store Store, d reminder.Dispatcher) *Scheduler {
	s := NewScheduler(seq, store, d, SchedulerConfig{
		MeetingBaseURL:   "https://meet.jit.si",
		ReminderLead:     30 * time.Minute,
		ReminderMinDelay: 2 * time.Minute,
		Location:         time.UTC,
	}, nil, logging.Default())
	s.now = func() time.Time { return testNow }
	return s
}

func validParams() CreateParams {
	return CreateParams{
		LawyerID:   "lawyer-1",
		ClientID:   "client-9",
		LawyerName: "Maria Souza",
		Date:       "2024-01-01",
		Time:       "14:00",
	}
}

func TestCreateHappyPath(t *testing.T) {
	store := &fakeStore{}
	dispatcher := &fakeDispatcher{}
	s := newTestScheduler(&fakeSequence{}, store, dispatcher)

	created, err := s.Create(context.Background(), validParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.AppointmentID != "1" {
		t.Errorf("expected id 1, got %s", created.AppointmentID)
	}
	if !strings.HasPrefix(created.MeetingLink, "https://meet.jit.si/consulta-maria-souza-") {
		t.Errorf("unexpected meeting link %s", created.MeetingLink)
	}

	if len(store.appts) != 1 {
		t.Fatal("appointment not persisted")
	}
	appt := store.appts[0]
	if appt.Status != StatusScheduled || appt.Date != "2024-01-01" || appt.Time != "14:00" {
		t.Fatalf("unexpected stored appointment %+v", appt)
	}

	if len(dispatcher.tasks) != 1 {
		t.Fatal("reminder not registered")
	}
	task := dispatcher.tasks[0]
	if task.Name() != "reminder-1" {
		t.Errorf("unexpected task name %s", task.Name())
	}
	// 14:00 appointment, 30m lead: reminder at 13:30.
	want := time.Date(2024, 1, 1, 13, 30, 0, 0, time.UTC)
	if !task.FireAt.Equal(want) {
		t.Errorf("expected fire at %s, got %s", want, task.FireAt)
	}
}

func TestCreateReminderFallbackWhenLeadPassed(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	s := newTestScheduler(&fakeSequence{}, &fakeStore{}, dispatcher)

	params := validParams()
	params.Time = "10:15" // 30m lead is already past at 10:00
	if _, err := s.Create(context.Background(), params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := testNow.Add(2 * time.Minute)
	if got := dispatcher.tasks[0].FireAt; !got.Equal(want) {
		t.Fatalf("expected fallback fire time %s, got %s", want, got)
	}
}

func TestCreateValidation(t *testing.T) {
	s := newTestScheduler(&fakeSequence{}, &fakeStore{}, &fakeDispatcher{})

	tests := []struct {
		name   string
		mutate func(*CreateParams)
	}{
		{"missing lawyer", func(p *CreateParams) { p.LawyerID = "" }},
		{"missing client", func(p *CreateParams) { p.ClientID = "" }},
		{"missing name", func(p *CreateParams) { p.LawyerName = "" }},
		{"bad date", func(p *CreateParams) { p.Date = "01/01/2024" }},
		{"bad time", func(p *CreateParams) { p.Time = "2pm" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParams()
			tt.mutate(&params)
			if _, err := s.Create(context.Background(), params); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateIDGenerationFailure(t *testing.T) {
	s := newTestScheduler(&fakeSequence{err: errors.New("redis down")}, &fakeStore{}, &fakeDispatcher{})

	_, err := s.Create(context.Background(), validParams())
	if !errors.Is(err, ErrIDGeneration) {
		t.Fatalf("expected ErrIDGeneration, got %v", err)
	}
}

func TestCreateSlotConflict(t *testing.T) {
	store := &fakeStore{}
	s := newTestScheduler(&fakeSequence{}, store, &fakeDispatcher{})

	if _, err := s.Create(context.Background(), validParams()); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	_, err := s.Create(context.Background(), validParams())
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken for second booking, got %v", err)
	}
	if len(store.appts) != 1 {
		t.Fatalf("conflict must not create a second record, have %d", len(store.appts))
	}
}

// Two simultaneous requests for the same slot: exactly one wins, ids stay
// distinct, and the loser surfaces the conflict instead of double-booking.
func TestCreateConcurrentSameSlot(t *testing.T) {
	store := &fakeStore{}
	s := newTestScheduler(&fakeSequence{}, store, &fakeDispatcher{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = s.Create(context.Background(), validParams())
		}(i)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected one winner and one conflict, got %d/%d", successes, conflicts)
	}
}

func TestCreateConcurrentDistinctIDs(t *testing.T) {
	store := &fakeStore{}
	dispatcher := &fakeDispatcher{}
	s := newTestScheduler(&fakeSequence{}, store, dispatcher)

	const n = 16
	var wg sync.WaitGroup
	ids := make([]string, n)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(slot int) {
			defer wg.Done()
			params := validParams()
			params.Time = availabilityHour(slot)
			params.Date = fmt.Sprintf("2024-01-%02d", slot+1)
			created, err := s.Create(context.Background(), params)
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			ids[slot] = created.AppointmentID
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate appointment id %s", id)
		}
		seen[id] = struct{}{}
	}
}

func availabilityHour(i int) string {
	return fmt.Sprintf("%02d:00", 8+(i%11))
}

func TestCreateReminderFailureKeepsAppointment(t *testing.T) {
	store := &fakeStore{}
	s := newTestScheduler(&fakeSequence{}, store, &fakeDispatcher{err: errors.New("scheduler unavailable")})

	created, err := s.Create(context.Background(), validParams())
	if !errors.Is(err, ErrReminderRegistration) {
		t.Fatalf("expected ErrReminderRegistration, got %v", err)
	}
	if created == nil || created.AppointmentID == "" {
		t.Fatal("created appointment must be reported despite reminder failure")
	}
	if len(store.appts) != 1 {
		t.Fatal("appointment must not be rolled back")
	}
}
