package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Read --------
	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	ListForDoctorOnDate(
		ctx context.Context,
		doctorID string,
		date string,
	) ([]models.Appointment, error)

	// ListForDoctor is ordered by date desc, then start time desc.
	ListForDoctor(
		ctx context.Context,
		doctorID string,
	) ([]models.Appointment, error)

	ListForPatient(
		ctx context.Context,
		patientID string,
	) ([]models.Appointment, error)

	// -------- Write --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// TransitionStatus updates the row only while it is still in status
	// from. It reports whether a row changed.
	TransitionStatus(
		ctx context.Context,
		id string,
		from Status,
		to Status,
		at time.Time,
	) (bool, error)

	// -------- Counters --------
	CountUpcomingForPatient(
		ctx context.Context,
		patientID string,
		now time.Time,
	) (int64, error)

	CountByPatientAndStatus(
		ctx context.Context,
		patientID string,
		status Status,
	) (int64, error)

	// CountActive counts pending and confirmed appointments.
	CountActive(ctx context.Context) (int64, error)

	// -------- Serialization --------

	// WithDoctorDays runs fn with exclusive access to the (doctorID, date)
	// booking key of every date, taken in the given order. fn receives a
	// repository bound to the same unit of work.
	WithDoctorDays(
		ctx context.Context,
		doctorID string,
		dates []string,
		fn func(ctx context.Context, tx Repository) error,
	) error
}
