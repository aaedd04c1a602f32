package availability

import "time"

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// DayName returns the lowercase English weekday name for a date.
func DayName(t time.Time) string {
	switch t.Weekday() {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}

// UpcomingDates lists horizonDays calendar dates starting at from (inclusive).
func UpcomingDates(from time.Time, horizonDays int) []string {
	dates := make([]string, 0, horizonDays)
	for i := 0; i < horizonDays; i++ {
		dates = append(dates, from.AddDate(0, 0, i).Format(DateFormat))
	}
	return dates
}

// ComputeFreeSlots subtracts occupied times from the weekly template for each
// date in the horizon. Dates with no free hours are omitted. The computation
// is pure; callers supply the occupied map keyed by date.
func ComputeFreeSlots(schedule WeeklySchedule, occupied map[string][]string, from time.Time, horizonDays int) map[string][]string {
	slots := make(map[string][]string)
	for i := 0; i < horizonDays; i++ {
		day := from.AddDate(0, 0, i)
		date := day.Format(DateFormat)

		declared := schedule.HoursFor(DayName(day))
		if len(declared) == 0 {
			continue
		}

		taken := make(map[string]struct{}, len(occupied[date]))
		for _, hour := range occupied[date] {
			taken[hour] = struct{}{}
		}

		free := make([]string, 0, len(declared))
		for _, hour := range declared {
			if _, booked := taken[hour]; !booked {
				free = append(free, hour)
			}
		}
		if len(free) > 0 {
			slots[date] = free
		}
	}
	return slots
}
