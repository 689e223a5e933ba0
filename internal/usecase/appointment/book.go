package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientID string
	DoctorID  string
	Date      string
	Time      string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo   domain.Repository
	users  account.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
	tz     string
	now    func() time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	users account.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
	tz string,
) *BookAppointment {
	return &BookAppointment{
		repo:   repo,
		users:  users,
		locker: locker,
		audit:  audit,
		tz:     tz,
		now:    time.Now,
	}
}

func BookingKey(doctorID, date string) string {
	return "booking:" + doctorID + ":" + date
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Doctor
	// --------------------------------------------------
	if err := requireDoctor(ctx, uc.users, in.DoctorID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Date / time in the clinic timezone
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(uc.tz, in.Date, in.Time)
	if err != nil {
		return nil, domain.ErrInvalidDateTime
	}
	end := start.Add(domain.Duration)

	if start.Before(uc.now()) {
		return nil, domain.ErrAppointmentInPast
	}

	// --------------------------------------------------
	// 3. Check + create under the booking lock
	// --------------------------------------------------
	ap := domain.NewPending(in.PatientID, in.DoctorID, start, uc.now().UTC())

	// a slot crossing midnight holds both days
	days := domain.SlotDays(start, end)
	keys := make([]string, 0, len(days))
	for _, day := range days {
		keys = append(keys, BookingKey(in.DoctorID, day))
	}

	err = lock.WithLocks(ctx, uc.locker, keys, func(ctx context.Context) error {
		return uc.repo.WithDoctorDays(ctx, in.DoctorID, days, func(ctx context.Context, tx domain.Repository) error {
			conflict, err := NewConflictEngine(tx).HasConflict(ctx, in.DoctorID, start, end)
			if err != nil {
				return fmt.Errorf("check conflicts: %w", err)
			}
			if conflict {
				return domain.ErrSlotConflict
			}
			return tx.CreateAppointment(ctx, ap)
		})
	})

	switch {
	case errors.Is(err, lock.ErrLockNotAcquired):
		return nil, domain.ErrSlotBusy
	case errors.Is(err, domain.ErrSlotConflict):
		uc.audit.Dispatch(audit.Event{
			UserID:   audit.StringPtr(in.PatientID),
			Action:   "appointment_conflict",
			Entity:   "appointment",
			Metadata: map[string]string{"doctorId": in.DoctorID, "date": in.Date, "time": in.Time},
		})
		return nil, err
	case err != nil:
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(in.PatientID),
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: audit.StringPtr(ap.ID),
		Metadata: map[string]string{"doctorId": in.DoctorID, "date": ap.Date},
	})

	return ap, nil
}

func requireDoctor(ctx context.Context, users account.Repository, doctorID string) error {
	if doctorID == "" {
		return domain.ErrDoctorNotFound
	}
	doctor, err := users.GetUserByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			return domain.ErrDoctorNotFound
		}
		return err
	}
	if doctor.Role != string(access.RoleDoctor) {
		return domain.ErrDoctorNotFound
	}
	return nil
}
