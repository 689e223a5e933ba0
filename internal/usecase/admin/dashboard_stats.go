package admin

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

type DashboardStats struct {
	TotalDoctors       int64 `json:"totalDoctors"`
	TotalPatients      int64 `json:"totalPatients"`
	ActiveAppointments int64 `json:"activeAppointments"`
}

type GetDashboardStats struct {
	users        account.Repository
	appointments appointment.Repository
}

func NewGetDashboardStats(users account.Repository, appointments appointment.Repository) *GetDashboardStats {
	return &GetDashboardStats{users: users, appointments: appointments}
}

func (uc *GetDashboardStats) Execute(ctx context.Context) (*DashboardStats, error) {
	doctors, err := uc.users.CountByRole(ctx, string(access.RoleDoctor))
	if err != nil {
		return nil, err
	}
	patients, err := uc.users.CountByRole(ctx, string(access.RolePatient))
	if err != nil {
		return nil, err
	}
	active, err := uc.appointments.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalDoctors:       doctors,
		TotalPatients:      patients,
		ActiveAppointments: active,
	}, nil
}
