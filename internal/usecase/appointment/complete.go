package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type CompleteAppointment struct {
	t transitioner
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		t: transitioner{
			repo:   repo,
			audit:  audit,
			role:   access.RoleDoctor,
			action: domain.ActionComplete,
			now:    time.Now,
		},
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
) (*models.Appointment, error) {
	return uc.t.execute(ctx, actorID, appointmentID)
}
