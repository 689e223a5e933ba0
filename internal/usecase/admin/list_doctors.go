package admin

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type DoctorPage struct {
	Doctors    []dto.DoctorDTO `json:"doctors"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

type ListDoctors struct {
	users account.Repository
}

func NewListDoctors(users account.Repository) *ListDoctors {
	return &ListDoctors{users: users}
}

// Execute clamps page to >= 1 and limit to [1, MaxPageSize].
func (uc *ListDoctors) Execute(ctx context.Context, f account.DoctorFilter) (*DoctorPage, error) {
	f.Page, f.Limit = NormalizePage(f.Page, f.Limit)

	doctors, total, err := uc.users.ListDoctors(ctx, f)
	if err != nil {
		return nil, err
	}

	return &DoctorPage{
		Doctors:    dto.NewDoctorList(doctors),
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: TotalPages(total, f.Limit),
	}, nil
}

func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
