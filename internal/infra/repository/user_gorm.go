package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserGormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserGormRepository) first(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if httperr.IsUniqueViolation(err) {
		return account.ErrEmailTaken
	}
	return err
}

func (r *UserGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"dob":        u.DOB,
			"telephone":  u.Telephone,
			"address":    u.Address,
			"category":   u.Category,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return account.ErrUserNotFound
	}
	return nil
}

func (r *UserGormRepository) ListDoctors(
	ctx context.Context,
	f account.DoctorFilter,
) ([]models.User, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", string(access.RoleDoctor))

	if f.Category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		q = q.Where(
			"LOWER(first_name || ' ' || last_name) LIKE ?",
			"%"+strings.ToLower(name)+"%",
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("first_name ASC, last_name ASC, id ASC")
	if f.Limit > 0 {
		q = q.Offset(f.Offset()).Limit(f.Limit)
	}

	var doctors []models.User
	if err := q.Find(&doctors).Error; err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (r *UserGormRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}

var _ account.Repository = (*UserGormRepository)(nil)
