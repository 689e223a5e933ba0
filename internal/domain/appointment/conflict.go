package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// Duration is the fixed length of every appointment.
const Duration = 60 * time.Minute

// Overlaps reports whether [s1, e1) and [s2, e2) intersect. Touching
// intervals do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// BlocksSlot is false for statuses that release their slot.
func BlocksSlot(status Status) bool {
	return status != StatusCancelled && status != StatusDeclined
}

// FindConflict returns the first slot-blocking appointment overlapping
// [start, end), or nil.
func FindConflict(existing []models.Appointment, start, end time.Time) *models.Appointment {
	for i := range existing {
		ap := &existing[i]
		if !BlocksSlot(Status(ap.Status)) {
			continue
		}
		if Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return ap
		}
	}
	return nil
}

// SlotDays lists, oldest first, the calendar days (in start's location)
// that [start, end) touches. A slot starting at 23:30 touches two days.
func SlotDays(start, end time.Time) []string {
	y, m, d := start.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, start.Location())

	last := start
	if end.After(start) {
		last = end.Add(-time.Nanosecond).In(start.Location())
	}

	var days []string
	for !day.After(last) {
		days = append(days, day.Format(timezone.DateLayout))
		day = day.AddDate(0, 0, 1)
	}
	return days
}

// ConflictDays lists the days an appointment overlapping [start, end) can be
// filed under: it starts at most one Duration before start.
func ConflictDays(start, end time.Time) []string {
	return SlotDays(start.Add(-Duration), end)
}
