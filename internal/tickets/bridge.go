package tickets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/juridia/juridia-platform/internal/appointments"
	"github.com/juridia/juridia-platform/internal/availability"
	"github.com/juridia/juridia-platform/internal/credits"
	"github.com/juridia/juridia-platform/internal/lawyers"
	"github.com/juridia/juridia-platform/internal/observability/metrics"
	"github.com/juridia/juridia-platform/pkg/logging"
)

// ticketIDSequence is the counter name backing ticket ids.
const ticketIDSequence = "ticketId"

// Matcher is the lawyer-selection surface the bridge consumes.
type Matcher interface {
	FindAvailable(ctx context.Context, area string) ([]lawyers.LawyerWithAvailability, error)
	SelectForSlot(candidates []lawyers.LawyerWithAvailability, day, hour string) (lawyers.LawyerWithAvailability, error)
}

// Scheduler creates the concrete appointment.
type Scheduler interface {
	Create(ctx context.Context, params appointments.CreateParams) (*appointments.Created, error)
}

// Sequence issues the next value of a named counter.
type Sequence interface {
	Next(ctx context.Context, name string) (string, error)
}

// Store persists ticket records.
type Store interface {
	Insert(ctx context.Context, t Ticket) error
}

// Bridge ties a consultation ticket to a concrete appointment: match a
// lawyer, schedule the meeting, persist the ticket referencing both, then
// debit one consultation credit.
type Bridge struct {
	matcher   Matcher
	scheduler Scheduler
	sequence  Sequence
	store     Store
	ledger    credits.Ledger
	location  *time.Location
	metrics   *metrics.SchedulingMetrics
	logger    *logging.Logger
	now       func() time.Time
}

// NewBridge creates the ticket-to-appointment bridge. ledger may be nil in
// environments without the external credit service.
func NewBridge(matcher Matcher, scheduler Scheduler, seq Sequence, store Store, ledger credits.Ledger, loc *time.Location, m *metrics.SchedulingMetrics, logger *logging.Logger) *Bridge {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Bridge{
		matcher:   matcher,
		scheduler: scheduler,
		sequence:  seq,
		store:     store,
		ledger:    ledger,
		location:  loc,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateTicketParams are the bridge inputs. Summary, explanation, and
// answer are the structured output of the external language-model service.
type CreateTicketParams struct {
	UserID      string
	Text        string
	Area        string
	Summary     string
	Explanation string
	AnswerAI    string
	Day         string // recurring weekday name, e.g. "monday"
	Hour        string // HH:MM
}

func (p CreateTicketParams) validate() error {
	if p.UserID == "" || strings.TrimSpace(p.Text) == "" || p.Area == "" ||
		p.Summary == "" || p.Explanation == "" || p.Day == "" || p.Hour == "" {
		return ErrInvalidInput
	}
	return nil
}

// CreatedTicket reports the identifiers minted during conversion.
type CreatedTicket struct {
	TicketID      string
	LawyerID      string
	LawyerName    string
	AppointmentID string
	MeetingLink   string
}

// CreateTicket runs the conversion. The ticket and appointment survive a
// failed credit debit; the error is surfaced without compensation.
func (b *Bridge) CreateTicket(ctx context.Context, params CreateTicketParams) (*CreatedTicket, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	candidates, err := b.matcher.FindAvailable(ctx, params.Area)
	if err != nil {
		b.metrics.ObserveTicket("match_error")
		return nil, err
	}
	if len(candidates) == 0 {
		b.metrics.ObserveTicket("no_lawyer")
		return nil, fmt.Errorf("%w for area %s", lawyers.ErrNoLawyerAvailable, params.Area)
	}

	lawyer, err := b.matcher.SelectForSlot(candidates, params.Day, params.Hour)
	if err != nil {
		b.metrics.ObserveTicket("no_lawyer")
		return nil, err
	}

	created, err := b.scheduler.Create(ctx, appointments.CreateParams{
		LawyerID:   lawyer.ID,
		ClientID:   params.UserID,
		LawyerName: lawyer.Name,
		Date:       b.nextDateFor(params.Day),
		Time:       params.Hour,
	})
	if err != nil {
		b.metrics.ObserveTicket("appointment_error")
		return nil, err
	}

	ticketID, err := b.sequence.Next(ctx, ticketIDSequence)
	if err != nil {
		b.metrics.ObserveTicket("id_error")
		return nil, fmt.Errorf("tickets: generate id: %w", err)
	}

	ticket := Ticket{
		TicketID:      ticketID,
		UserID:        params.UserID,
		LawyerID:      lawyer.ID,
		Text:          strings.TrimSpace(params.Text),
		Area:          params.Area,
		Summary:       params.Summary,
		Explanation:   params.Explanation,
		AnswerAI:      params.AnswerAI,
		Type:          TypeTicket,
		Status:        StatusNew,
		Day:           params.Day,
		Hour:          params.Hour,
		AppointmentID: created.AppointmentID,
		MeetingLink:   created.MeetingLink,
		CreatedAt:     b.now().UTC(),
	}
	if err := b.store.Insert(ctx, ticket); err != nil {
		b.metrics.ObserveTicket("store_error")
		return nil, err
	}

	result := &CreatedTicket{
		TicketID:      ticketID,
		LawyerID:      lawyer.ID,
		LawyerName:    lawyer.Name,
		AppointmentID: created.AppointmentID,
		MeetingLink:   created.MeetingLink,
	}

	if b.ledger != nil {
		if err := b.ledger.Debit(ctx, params.UserID, credits.KindConsultation); err != nil {
			// Ticket and appointment already exist; no compensating rollback.
			b.metrics.ObserveTicket("debit_error")
			b.logger.Error("credit debit failed after ticket creation",
				"error", err, "ticket_id", ticketID, "user_id", params.UserID)
			return result, err
		}
	}

	b.metrics.ObserveTicket("created")
	b.logger.Info("ticket converted to appointment",
		"ticket_id", ticketID,
		"appointment_id", created.AppointmentID,
		"lawyer_id", lawyer.ID,
		"area", params.Area,
	)
	return result, nil
}

// nextDateFor resolves a recurring weekday name to the next matching
// calendar date, today inclusive.
func (b *Bridge) nextDateFor(day string) string {
	today := b.now().In(b.location)
	for i := 0; i < 7; i++ {
		candidate := today.AddDate(0, 0, i)
		if availability.DayName(candidate) == day {
			return candidate.Format(availability.DateFormat)
		}
	}
	// Unknown day name; let the scheduler's datetime parse reject it.
	return day
}
