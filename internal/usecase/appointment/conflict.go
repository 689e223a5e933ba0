package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

// ConflictEngine answers whether a doctor already has a slot-blocking
// appointment overlapping a proposed interval, across midnight included.
type ConflictEngine struct {
	repo domain.Repository
}

func NewConflictEngine(repo domain.Repository) *ConflictEngine {
	return &ConflictEngine{repo: repo}
}

func (e *ConflictEngine) HasConflict(
	ctx context.Context,
	doctorID string,
	start time.Time,
	end time.Time,
) (bool, error) {

	for _, day := range domain.ConflictDays(start, end) {
		existing, err := e.repo.ListForDoctorOnDate(ctx, doctorID, day)
		if err != nil {
			return false, err
		}
		if domain.FindConflict(existing, start, end) != nil {
			return true, nil
		}
	}
	return false, nil
}
