package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// CancelAppointment is only open to the patient who booked the appointment.
type CancelAppointment struct {
	t transitioner
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		t: transitioner{
			repo:   repo,
			audit:  audit,
			role:   access.RolePatient,
			action: domain.ActionCancel,
			now:    time.Now,
		},
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
) (*models.Appointment, error) {
	return uc.t.execute(ctx, actorID, appointmentID)
}
