package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlots lays Duration-long slots from opening to closing on day and
// drops the ones that touch lunch or collide with a slot-blocking
// appointment. Slots that already started before now are dropped too.
func FreeSlots(
	day time.Time,
	hours ClinicHours,
	existing []models.Appointment,
	now time.Time,
) ([]TimeSlot, error) {

	b, err := hours.bounds(day)
	if err != nil {
		return nil, err
	}

	slots := []TimeSlot{}
	for cur := b.open; !cur.Add(Duration).After(b.close); cur = cur.Add(Duration) {
		slotStart := cur
		slotEnd := cur.Add(Duration)

		if hours.HasLunch() && Overlaps(slotStart, slotEnd, b.lunchStart, b.lunchEnd) {
			continue
		}
		if slotStart.Before(now) {
			continue
		}
		if FindConflict(existing, slotStart, slotEnd) != nil {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: slotStart.Format(timezone.ClockLayout),
			End:   slotEnd.Format(timezone.ClockLayout),
		})
	}

	return slots, nil
}
