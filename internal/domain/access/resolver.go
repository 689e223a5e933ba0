package access

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// CanAccessAppointment reports whether the actor is the patient who booked
// ap or the doctor it is assigned to.
func CanAccessAppointment(actorID string, actorRole Role, ap *models.Appointment) bool {
	if ap == nil || actorID == "" {
		return false
	}
	switch actorRole {
	case RolePatient:
		return ap.PatientID == actorID
	case RoleDoctor:
		return ap.DoctorID == actorID
	default:
		return false
	}
}

// Resolver answers record-sharing questions. It never caches: every call
// reads the current grants.
type Resolver struct {
	grants GrantRepository
}

func NewResolver(grants GrantRepository) *Resolver {
	return &Resolver{grants: grants}
}

// CanAccessRecord is true iff a grant (patientID, doctorID) exists. A missing
// grant is a normal false, not an error.
func (r *Resolver) CanAccessRecord(ctx context.Context, doctorID, patientID string) (bool, error) {
	if doctorID == "" || patientID == "" {
		return false, nil
	}
	ok, err := r.grants.GrantExists(ctx, patientID, doctorID)
	if err != nil {
		return false, fmt.Errorf("check record grant: %w", err)
	}
	return ok, nil
}

// CanReadRecords applies the owner rule first, then the grant rule for doctors.
func (r *Resolver) CanReadRecords(ctx context.Context, actorID string, actorRole Role, patientID string) (bool, error) {
	switch actorRole {
	case RolePatient:
		return actorID != "" && actorID == patientID, nil
	case RoleDoctor:
		return r.CanAccessRecord(ctx, actorID, patientID)
	default:
		return false, nil
	}
}
