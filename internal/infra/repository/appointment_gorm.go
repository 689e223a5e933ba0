package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var activeStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListForDoctorOnDate(
	ctx context.Context,
	doctorID string,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForDoctor(
	ctx context.Context,
	doctorID string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date DESC, start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListForPatient(
	ctx context.Context,
	patientID string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date DESC, start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Create(ap).Error
	if httperr.IsExclusionConflict(err) {
		return domain.ErrSlotConflict
	}
	return err
}

func (r *AppointmentGormRepository) TransitionStatus(
	ctx context.Context,
	id string,
	from domain.Status,
	to domain.Status,
	at time.Time,
) (bool, error) {

	updates := map[string]any{
		"status":     string(to),
		"updated_at": at,
	}
	if col := domain.StampColumn(to); col != "" {
		updates[col] = at
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Counters
// --------------------------------------------------

func (r *AppointmentGormRepository) CountUpcomingForPatient(
	ctx context.Context,
	patientID string,
	now time.Time,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("patient_id = ? AND status IN ? AND start_time > ?", patientID, activeStatuses, now).
		Count(&count).Error
	return count, err
}

func (r *AppointmentGormRepository) CountByPatientAndStatus(
	ctx context.Context,
	patientID string,
	status domain.Status,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("patient_id = ? AND status = ?", patientID, string(status)).
		Count(&count).Error
	return count, err
}

func (r *AppointmentGormRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("status IN ?", activeStatuses).
		Count(&count).Error
	return count, err
}

// --------------------------------------------------
// Serialization
// --------------------------------------------------

// WithDoctorDays runs fn inside a transaction that holds a
// transaction-scoped advisory lock on each (doctor, date) pair.
func (r *AppointmentGormRepository) WithDoctorDays(
	ctx context.Context,
	doctorID string,
	dates []string,
	fn func(ctx context.Context, tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, date := range dates {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtext(?))",
				"booking:"+doctorID+":"+date,
			).Error; err != nil {
				return err
			}
		}
		return fn(ctx, &AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
