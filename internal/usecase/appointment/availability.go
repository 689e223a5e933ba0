package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

var ErrInvalidDate = httperr.Validation("invalid_date", "Date must be YYYY-MM-DD.")

type Availability struct {
	DoctorID string            `json:"doctorId"`
	Date     string            `json:"date"`
	Slots    []domain.TimeSlot `json:"slots"`
}

type GetAvailability struct {
	repo  domain.Repository
	users account.Repository
	hours domain.ClinicHours
	tz    string
	now   func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	users account.Repository,
	hours domain.ClinicHours,
	tz string,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		users: users,
		hours: hours,
		tz:    tz,
		now:   time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	doctorID string,
	date string,
) (*Availability, error) {

	if err := requireDoctor(ctx, uc.users, doctorID); err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(uc.tz, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	appointments, err := uc.repo.ListForDoctorOnDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	slots, err := domain.FreeSlots(day, uc.hours, appointments, uc.now())
	if err != nil {
		return nil, err
	}

	return &Availability{DoctorID: doctorID, Date: date, Slots: slots}, nil
}
