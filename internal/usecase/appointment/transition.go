package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// transitioner is shared by the cancel/decline/confirm/complete use cases.
type transitioner struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	role   access.Role
	action domain.Action
	now    func() time.Time
}

func (t *transitioner) execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := t.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !access.CanAccessAppointment(actorID, t.role, ap) {
		return nil, access.ErrNotOwner
	}

	current := domain.Status(ap.Status)
	next, err := domain.Transition(current, t.action)
	if err != nil {
		return nil, err
	}
	if next == current {
		return ap, nil
	}

	at := t.now().UTC()
	changed, err := t.repo.TransitionStatus(ctx, ap.ID, current, next, at)
	if err != nil {
		return nil, err
	}
	if !changed {
		// lost a race; report against what is stored now
		fresh, err := t.repo.GetAppointment(ctx, ap.ID)
		if err != nil {
			return nil, err
		}
		if domain.Status(fresh.Status) == next {
			return fresh, nil
		}
		return nil, domain.ErrInvalidTransition
	}

	domain.Apply(ap, next, at)

	t.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(actorID),
		Action:   t.action.Event(),
		Entity:   "appointment",
		EntityID: audit.StringPtr(ap.ID),
		Metadata: map[string]string{"from": string(current), "to": string(next)},
	})

	return ap, nil
}
