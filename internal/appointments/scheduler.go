package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/juridia/juridia-platform/internal/observability/metrics"
	"github.com/juridia/juridia-platform/internal/reminder"
	"github.com/juridia/juridia-platform/pkg/logging"
)

var schedulerTracer = otel.Tracer("juridia.internal.appointments")

// appointmentIDSequence is the counter name backing appointment ids.
const appointmentIDSequence = "appointmentId"

// Sequence issues the next value of a named counter.
type Sequence interface {
	Next(ctx context.Context, name string) (string, error)
}

// Store persists appointment records.
type Store interface {
	Insert(ctx context.Context, appt Appointment) error
}

// SchedulerConfig carries the scheduling knobs.
type SchedulerConfig struct {
	// MeetingBaseURL is the meeting-room host, e.g. https://meet.jit.si.
	MeetingBaseURL string
	// ReminderLead is how long before the appointment the reminder fires.
	ReminderLead time.Duration
	// ReminderMinDelay is the fallback delay when the lead has already passed.
	ReminderMinDelay time.Duration
	// Location interprets appointment wall-clock times.
	Location *time.Location
}

// Scheduler orchestrates appointment creation: mint a sequential id, persist
// the record, synthesize the meeting link, and register the reminder task.
type Scheduler struct {
	sequence   Sequence
	store      Store
	dispatcher reminder.Dispatcher
	cfg        SchedulerConfig
	metrics    *metrics.SchedulingMetrics
	logger     *logging.Logger
	now        func() time.Time
}

// NewScheduler creates the appointment scheduler.
func NewScheduler(seq Sequence, store Store, dispatcher reminder.Dispatcher, cfg SchedulerConfig, m *metrics.SchedulingMetrics, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.MeetingBaseURL == "" {
		cfg.MeetingBaseURL = "https://meet.jit.si"
	}
	if cfg.ReminderLead == 0 {
		cfg.ReminderLead = 30 * time.Minute
	}
	if cfg.ReminderMinDelay == 0 {
		cfg.ReminderMinDelay = 2 * time.Minute
	}
	return &Scheduler{
		sequence:   seq,
		store:      store,
		dispatcher: dispatcher,
		cfg:        cfg,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateParams are the inputs for one appointment.
type CreateParams struct {
	LawyerID   string
	ClientID   string
	LawyerName string
	Date       string // YYYY-MM-DD
	Time       string // HH:MM
}

// Created is the result of a successful scheduling run.
type Created struct {
	AppointmentID string
	MeetingLink   string
}

// Create runs the scheduling sequence. Each stage fails independently:
// counter failures surface ErrIDGeneration, a taken slot surfaces
// ErrSlotTaken, and a failed reminder registration surfaces
// ErrReminderRegistration while the persisted appointment is kept; there is
// no compensating delete.
func (s *Scheduler) Create(ctx context.Context, params CreateParams) (*Created, error) {
	ctx, span := schedulerTracer.Start(ctx, "appointments.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("juridia.lawyer_id", params.LawyerID),
		attribute.String("juridia.date", params.Date),
		attribute.String("juridia.time", params.Time),
	)

	if params.LawyerID == "" || params.ClientID == "" || params.LawyerName == "" {
		return nil, ErrInvalidInput
	}
	appointmentAt, err := time.ParseInLocation("2006-01-02 15:04", params.Date+" "+params.Time, s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: unparsable datetime %q %q", ErrInvalidInput, params.Date, params.Time)
	}

	appointmentID, err := s.sequence.Next(ctx, appointmentIDSequence)
	if err != nil {
		s.metrics.ObserveAppointment("id_error")
		return nil, fmt.Errorf("%w: %w", ErrIDGeneration, err)
	}

	now := s.now()
	meetingLink := fmt.Sprintf("%s/consulta-%s-%d", s.cfg.MeetingBaseURL, NameSlug(params.LawyerName), now.UnixMilli())

	appt := Appointment{
		AppointmentID: appointmentID,
		LawyerID:      params.LawyerID,
		ClientID:      params.ClientID,
		Date:          params.Date,
		Time:          params.Time,
		MeetingLink:   meetingLink,
		Status:        StatusScheduled,
		CreatedAt:     now.UTC(),
	}
	if err := s.store.Insert(ctx, appt); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.metrics.ObserveSlotConflict()
			s.metrics.ObserveAppointment("conflict")
			s.logger.Warn("slot already booked",
				"lawyer_id", params.LawyerID, "date", params.Date, "time", params.Time)
		} else {
			s.metrics.ObserveAppointment("store_error")
		}
		return nil, err
	}

	task := reminder.Task{
		AppointmentID: appointmentID,
		FireAt:        reminder.FireTime(appointmentAt, now.In(s.cfg.Location), s.cfg.ReminderLead, s.cfg.ReminderMinDelay),
	}
	if err := s.dispatcher.Register(ctx, task); err != nil {
		// The appointment stays; the meeting happens even without a reminder.
		s.metrics.ObserveReminder("failed")
		s.metrics.ObserveAppointment("created")
		s.logger.Error("reminder registration failed",
			"error", err, "appointment_id", appointmentID)
		return &Created{AppointmentID: appointmentID, MeetingLink: meetingLink},
			fmt.Errorf("%w: %w", ErrReminderRegistration, err)
	}
	s.metrics.ObserveReminder("registered")
	s.metrics.ObserveAppointment("created")

	s.logger.Info("appointment scheduled",
		"appointment_id", appointmentID,
		"lawyer_id", params.LawyerID,
		"client_id", params.ClientID,
		"date", params.Date,
		"time", params.Time,
	)
	return &Created{AppointmentID: appointmentID, MeetingLink: meetingLink}, nil
}
