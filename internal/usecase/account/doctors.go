package account

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// FindDoctors is the unpaged doctor directory patients browse.
type FindDoctors struct {
	users domain.Repository
}

func NewFindDoctors(users domain.Repository) *FindDoctors {
	return &FindDoctors{users: users}
}

func (uc *FindDoctors) Execute(ctx context.Context, category string) ([]models.User, error) {
	doctors, _, err := uc.users.ListDoctors(ctx, domain.DoctorFilter{Category: category})
	return doctors, err
}
