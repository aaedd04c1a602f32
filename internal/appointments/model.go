package appointments

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

var (
	// ErrInvalidInput is returned when required fields are missing or the
	// datetime does not parse.
	ErrInvalidInput = errors.New("missing or invalid required fields")

	// ErrIDGeneration is returned when the counter yields no usable value.
	ErrIDGeneration = errors.New("failed to generate appointment id")

	// ErrSlotTaken is returned when another appointment already holds the
	// same (lawyer, date, time) slot.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrReminderRegistration is returned when the appointment persisted but
	// the reminder task could not be registered. The appointment is kept.
	ErrReminderRegistration = errors.New("failed to register reminder")

	// ErrNotFound is returned when an appointment id is unknown.
	ErrNotFound = errors.New("appointment not found")
)

// StatusScheduled is the only status this core ever writes. Terminal states
// belong to the ticket workflow.
const StatusScheduled = "scheduled"

// Appointment is one scheduled consultation meeting. Records are created
// exactly once and never mutated or deleted by this core.
type Appointment struct {
	AppointmentID string    `json:"appointmentId"`
	LawyerID      string    `json:"lawyerId"`
	ClientID      string    `json:"clientId"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	MeetingLink   string    `json:"meetingLink"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NameSlug lowercases a lawyer name and joins its parts with hyphens so it
// can be embedded in a meeting-room URL.
func NameSlug(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
