package availability

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingLawyerID is returned when a request omits the lawyer id.
	ErrMissingLawyerID = errors.New("lawyerId is required")

	// ErrInvalidSchedule is returned when a schedule references unknown days or hours.
	ErrInvalidSchedule = errors.New("invalid weekly schedule")
)

// WeeklySchedule maps a lowercase English weekday name to the set of
// bookable hour labels declared for that day. A missing day means no
// availability. Schedules are replaced wholesale, never patched.
type WeeklySchedule map[string][]string

// CanonicalHours is the fixed set of bookable hour labels.
var CanonicalHours = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

// WeekDays lists the canonical weekday identifiers.
var WeekDays = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

var (
	hourSet = toSet(CanonicalHours)
	daySet  = toSet(WeekDays)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Validate checks every day and hour label against the canonical sets.
func (s WeeklySchedule) Validate() error {
	for day, hours := range s {
		if _, ok := daySet[day]; !ok {
			return fmt.Errorf("%w: unknown day %q", ErrInvalidSchedule, day)
		}
		for _, hour := range hours {
			if _, ok := hourSet[hour]; !ok {
				return fmt.Errorf("%w: hour %q not in canonical set", ErrInvalidSchedule, hour)
			}
		}
	}
	return nil
}

// HoursFor returns the declared hours for a weekday, empty when absent.
func (s WeeklySchedule) HoursFor(day string) []string {
	return s[day]
}

// Includes reports whether the schedule declares the given (day, hour) pair.
func (s WeeklySchedule) Includes(day, hour string) bool {
	for _, h := range s[day] {
		if h == hour {
			return true
		}
	}
	return false
}
