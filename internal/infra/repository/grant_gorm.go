package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type GrantGormRepository struct {
	db *gorm.DB
}

func NewGrantGormRepository(db *gorm.DB) *GrantGormRepository {
	return &GrantGormRepository{db: db}
}

func (r *GrantGormRepository) GrantExists(ctx context.Context, patientID, doctorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PermissionGrant{}).
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Count(&count).Error
	return count > 0, err
}

func (r *GrantGormRepository) CreateGrant(ctx context.Context, g *models.PermissionGrant) error {
	err := r.db.WithContext(ctx).Create(g).Error
	if httperr.IsUniqueViolation(err) {
		return access.ErrGrantExists
	}
	return err
}

func (r *GrantGormRepository) DeleteGrant(ctx context.Context, patientID, doctorID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Delete(&models.PermissionGrant{})
	return res.RowsAffected > 0, res.Error
}

func (r *GrantGormRepository) ListGrantsForPatient(ctx context.Context, patientID string) ([]models.PermissionGrant, error) {
	var grants []models.PermissionGrant
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at ASC, doctor_id ASC").
		Find(&grants).Error
	return grants, err
}

var _ access.GrantRepository = (*GrantGormRepository)(nil)
