package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ClinicHours are the wall-clock opening hours (HH:MM) used to lay out
// availability. Lunch is optional.
type ClinicHours struct {
	Open       string
	Close      string
	LunchStart string
	LunchEnd   string
}

func (h ClinicHours) HasLunch() bool {
	return h.LunchStart != "" && h.LunchEnd != ""
}

func (h ClinicHours) Validate() error {
	day := time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC)
	b, err := h.bounds(day)
	if err != nil {
		return err
	}
	if !b.open.Before(b.close) {
		return fmt.Errorf("clinic opens at %s but closes at %s", h.Open, h.Close)
	}
	if h.HasLunch() && !b.lunchStart.Before(b.lunchEnd) {
		return fmt.Errorf("lunch starts at %s but ends at %s", h.LunchStart, h.LunchEnd)
	}
	return nil
}

// IsWithin reports whether [start, end) fits inside opening hours and does
// not touch lunch.
func (h ClinicHours) IsWithin(start, end time.Time) (bool, error) {
	b, err := h.bounds(start)
	if err != nil {
		return false, err
	}
	if start.Before(b.open) || end.After(b.close) {
		return false, nil
	}
	if h.HasLunch() && Overlaps(start, end, b.lunchStart, b.lunchEnd) {
		return false, nil
	}
	return true, nil
}

type dayBounds struct {
	open, close          time.Time
	lunchStart, lunchEnd time.Time
}

func (h ClinicHours) bounds(day time.Time) (dayBounds, error) {
	var b dayBounds
	var err error

	if b.open, err = timezone.AtClock(day, h.Open); err != nil {
		return b, fmt.Errorf("invalid opening time %q: %w", h.Open, err)
	}
	if b.close, err = timezone.AtClock(day, h.Close); err != nil {
		return b, fmt.Errorf("invalid closing time %q: %w", h.Close, err)
	}
	if h.HasLunch() {
		if b.lunchStart, err = timezone.AtClock(day, h.LunchStart); err != nil {
			return b, fmt.Errorf("invalid lunch start %q: %w", h.LunchStart, err)
		}
		if b.lunchEnd, err = timezone.AtClock(day, h.LunchEnd); err != nil {
			return b, fmt.Errorf("invalid lunch end %q: %w", h.LunchEnd, err)
		}
	}
	return b, nil
}
