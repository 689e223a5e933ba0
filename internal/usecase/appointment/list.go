package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListDoctorAppointments struct {
	repo domain.Repository
}

func NewListDoctorAppointments(repo domain.Repository) *ListDoctorAppointments {
	return &ListDoctorAppointments{repo: repo}
}

// Execute returns every appointment of the doctor, newest date first.
func (uc *ListDoctorAppointments) Execute(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return uc.repo.ListForDoctor(ctx, doctorID)
}

type ListPatientAppointments struct {
	repo domain.Repository
}

func NewListPatientAppointments(repo domain.Repository) *ListPatientAppointments {
	return &ListPatientAppointments{repo: repo}
}

func (uc *ListPatientAppointments) Execute(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return uc.repo.ListForPatient(ctx, patientID)
}

// GetAppointment returns one appointment to its patient or doctor.
type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actorID string,
	role access.Role,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessAppointment(actorID, role, ap) {
		return nil, access.ErrNotOwner
	}
	return ap, nil
}
