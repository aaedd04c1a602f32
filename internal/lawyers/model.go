package lawyers

import (
	"errors"
	"strings"

	"github.com/juridia/juridia-platform/internal/availability"
)

var (
	// ErrMissingArea is returned when a directory query omits the practice area.
	ErrMissingArea = errors.New("practice area is required")

	// ErrNoLawyerAvailable is returned when no active lawyer covers the
	// requested area and slot.
	ErrNoLawyerAvailable = errors.New("no lawyer available")
)

// Lawyer is one directory entry. The directory is written by the onboarding
// flow; this core only reads it.
type Lawyer struct {
	ID            string   `json:"id"`
	FirstName     string   `json:"-"`
	LastName      string   `json:"-"`
	Name          string   `json:"name"`
	OABNumber     string   `json:"-"`
	Role          string   `json:"-"`
	Status        string   `json:"-"`
	PracticeAreas []string `json:"-"`
}

// DisplayName joins first and last name the way the directory shows it.
func (l Lawyer) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(l.FirstName) + " " + strings.TrimSpace(l.LastName))
}

// LawyerWithAvailability pairs a directory entry with its weekly template.
type LawyerWithAvailability struct {
	ID           string                      `json:"id"`
	Name         string                      `json:"name"`
	Availability availability.WeeklySchedule `json:"availability"`
}
