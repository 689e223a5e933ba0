package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ConfirmAppointment struct {
	t transitioner
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		t: transitioner{
			repo:   repo,
			audit:  audit,
			role:   access.RoleDoctor,
			action: domain.ActionConfirm,
			now:    time.Now,
		},
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
) (*models.Appointment, error) {
	return uc.t.execute(ctx, actorID, appointmentID)
}
