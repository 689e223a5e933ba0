package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DeclineAppointment struct {
	t transitioner
}

func NewDeclineAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeclineAppointment {
	return &DeclineAppointment{
		t: transitioner{
			repo:   repo,
			audit:  audit,
			role:   access.RoleDoctor,
			action: domain.ActionDecline,
			now:    time.Now,
		},
	}
}

func (uc *DeclineAppointment) Execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
) (*models.Appointment, error) {
	return uc.t.execute(ctx, actorID, appointmentID)
}
