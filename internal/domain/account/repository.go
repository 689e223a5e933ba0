package account

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DoctorFilter struct {
	Name     string
	Category string
	Page     int
	Limit    int
}

// Offset is zero-based; Page starts at 1.
func (f DoctorFilter) Offset() int {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type Repository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error

	// ListDoctors returns one page plus the unpaged total. A zero Limit
	// returns every match.
	ListDoctors(ctx context.Context, f DoctorFilter) ([]models.User, int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}
