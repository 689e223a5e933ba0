package access

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Grants lets a patient share their medical records with doctors.
type Grants struct {
	grants domain.GrantRepository
	users  account.Repository
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewGrants(
	grants domain.GrantRepository,
	users account.Repository,
	audit *audit.Dispatcher,
) *Grants {
	return &Grants{grants: grants, users: users, audit: audit, now: time.Now}
}

func (uc *Grants) Grant(ctx context.Context, patientID, doctorID string) (*models.PermissionGrant, error) {
	doctor, err := uc.users.GetUserByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			return nil, appointment.ErrDoctorNotFound
		}
		return nil, err
	}
	if doctor.Role != string(domain.RoleDoctor) {
		return nil, appointment.ErrDoctorNotFound
	}

	g := &models.PermissionGrant{
		ID:        uuid.NewString(),
		PatientID: patientID,
		DoctorID:  doctorID,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.grants.CreateGrant(ctx, g); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(patientID),
		Action:   "grant_created",
		Entity:   "permission_grant",
		EntityID: audit.StringPtr(g.ID),
		Metadata: map[string]string{"doctorId": doctorID},
	})
	return g, nil
}

func (uc *Grants) Revoke(ctx context.Context, patientID, doctorID string) error {
	removed, err := uc.grants.DeleteGrant(ctx, patientID, doctorID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrGrantNotFound
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(patientID),
		Action:   "grant_revoked",
		Entity:   "permission_grant",
		Metadata: map[string]string{"doctorId": doctorID},
	})
	return nil
}

func (uc *Grants) List(ctx context.Context, patientID string) ([]models.PermissionGrant, error) {
	return uc.grants.ListGrantsForPatient(ctx, patientID)
}
