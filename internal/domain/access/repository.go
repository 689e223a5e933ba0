package access

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type GrantRepository interface {
	GrantExists(ctx context.Context, patientID, doctorID string) (bool, error)
	CreateGrant(ctx context.Context, g *models.PermissionGrant) error
	DeleteGrant(ctx context.Context, patientID, doctorID string) (bool, error)
	ListGrantsForPatient(ctx context.Context, patientID string) ([]models.PermissionGrant, error)
}
