package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/juridia/juridia-platform/internal/appointments"
	"github.com/juridia/juridia-platform/pkg/logging"
)

// ErrNoRecipients is returned when neither party of an appointment could be
// resolved to an email address.
var ErrNoRecipients = errors.New("notify: no reminder recipients resolved")

// AppointmentSource loads the appointment a reminder refers to.
type AppointmentSource interface {
	GetByID(ctx context.Context, appointmentID string) (*appointments.Appointment, error)
}

// ContactResolver maps a platform user id to an email address and display
// name. Unknown users return an error and are skipped.
type ContactResolver interface {
	Email(ctx context.Context, userID string) (address, name string, err error)
}

// ReminderService emails both parties of an appointment shortly before it
// starts. It is invoked by the scheduled reminder lambda.
type ReminderService struct {
	appointments AppointmentSource
	contacts     ContactResolver
	email        EmailSender
	logger       *logging.Logger
}

// NewReminderService creates the reminder delivery service.
func NewReminderService(src AppointmentSource, contacts ContactResolver, email EmailSender, logger *logging.Logger) *ReminderService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReminderService{
		appointments: src,
		contacts:     contacts,
		email:        email,
		logger:       logger,
	}
}

// SendReminder loads the appointment and emails every party whose email is
// known. Delivery is best effort per recipient; it fails only when no one
// could be reached.
func (s *ReminderService) SendReminder(ctx context.Context, appointmentID string) error {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("notify: load appointment %s: %w", appointmentID, err)
	}

	delivered := 0
	var errs []error
	for _, userID := range []string{appt.LawyerID, appt.ClientID} {
		address, name, err := s.contacts.Email(ctx, userID)
		if err != nil {
			s.logger.Warn("reminder recipient not resolved", "user_id", userID, "appointment_id", appointmentID, "error", err)
			continue
		}

		msg := reminderMessage(appt, address, name)
		if err := s.email.Send(ctx, msg); err != nil {
			errs = append(errs, err)
			continue
		}
		delivered++
	}

	if delivered == 0 {
		if len(errs) > 0 {
			return errors.Join(errs...)
		}
		return ErrNoRecipients
	}

	s.logger.Info("appointment reminder delivered",
		"appointment_id", appointmentID, "recipients", delivered, "failures", len(errs))
	return nil
}

func reminderMessage(appt *appointments.Appointment, address, name string) EmailMessage {
	body := fmt.Sprintf(
		"Olá %s,\n\nSua consulta está marcada para %s às %s.\n\nAcesse a reunião pelo link: %s\n\nEquipe JuridIA",
		name, appt.Date, appt.Time, appt.MeetingLink)
	return EmailMessage{
		To:      address,
		ToName:  name,
		Subject: fmt.Sprintf("Lembrete: consulta hoje às %s", appt.Time),
		Body:    body,
	}
}
