package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Actions
// ===============================

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionDecline  Action = "decline"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

var ErrInvalidTransition = httperr.ErrBusiness(
	httperr.KindConflict,
	"invalid_transition",
	"The appointment cannot change to the requested status.",
)

type rule struct {
	from []Status
	to   Status
}

var rules = map[Action]rule{
	ActionConfirm:  {from: []Status{StatusPending}, to: StatusConfirmed},
	ActionDecline:  {from: []Status{StatusPending}, to: StatusDeclined},
	ActionCancel:   {from: []Status{StatusPending, StatusConfirmed}, to: StatusCancelled},
	ActionComplete: {from: []Status{StatusConfirmed}, to: StatusCompleted},
}

// Transition returns the status current moves to under action. Applying an
// action to an appointment already in its target status returns that status
// unchanged so callers can treat it as a no-op.
func Transition(current Status, action Action) (Status, error) {
	r, ok := rules[action]
	if !ok {
		return current, ErrInvalidTransition
	}
	if current == r.to {
		return current, nil
	}
	for _, from := range r.from {
		if current == from {
			return r.to, nil
		}
	}
	return current, ErrInvalidTransition
}

// Event is the audit action recorded when action succeeds.
func (a Action) Event() string {
	switch a {
	case ActionConfirm:
		return "appointment_confirmed"
	case ActionDecline:
		return "appointment_declined"
	case ActionCancel:
		return "appointment_cancelled"
	case ActionComplete:
		return "appointment_completed"
	}
	return "appointment_" + string(a)
}
