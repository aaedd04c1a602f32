package tickets

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInput is returned when required ticket fields are missing.
	ErrInvalidInput = errors.New("missing required ticket fields")

	// ErrNotFound is returned when a ticket id is unknown.
	ErrNotFound = errors.New("ticket not found")
)

// Ticket statuses move through the lawyer panel workflow; this core only
// ever writes the initial one.
const (
	StatusNew        = "Novo"
	StatusInProgress = "Em andamento"
	StatusClosed     = "Finalizado"
)

// TypeTicket is the record type written for consultation tickets.
const TypeTicket = "ticket"

// Ticket is a user's legal inquiry escalated into a paid consultation. The
// AI fields (summary, explanation, answer) arrive as structured output from
// the external language-model service; this core just stores them.
type Ticket struct {
	TicketID      string    `json:"id"`
	UserID        string    `json:"userId"`
	LawyerID      string    `json:"lawyerId"`
	Text          string    `json:"text"`
	Area          string    `json:"area"`
	Summary       string    `json:"summary"`
	Explanation   string    `json:"explanation"`
	AnswerAI      string    `json:"answerIA,omitempty"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Day           string    `json:"day"`
	Hour          string    `json:"hour"`
	AppointmentID string    `json:"appointmentId"`
	MeetingLink   string    `json:"meetingLink"`
	CreatedAt     time.Time `json:"createdAt"`
}
