package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

type PatientDashboard struct {
	UpcomingAppointments int64 `json:"upcomingAppointments"`
	TotalVisits          int64 `json:"totalVisits"`
}

type GetPatientDashboard struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetPatientDashboard(repo domain.Repository) *GetPatientDashboard {
	return &GetPatientDashboard{repo: repo, now: time.Now}
}

// Execute counts active appointments still ahead and completed visits.
func (uc *GetPatientDashboard) Execute(ctx context.Context, patientID string) (*PatientDashboard, error) {
	upcoming, err := uc.repo.CountUpcomingForPatient(ctx, patientID, uc.now())
	if err != nil {
		return nil, err
	}
	visits, err := uc.repo.CountByPatientAndStatus(ctx, patientID, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}
	return &PatientDashboard{UpcomingAppointments: upcoming, TotalVisits: visits}, nil
}
