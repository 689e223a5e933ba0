package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// NewPending builds a pending appointment occupying [start, start+Duration).
func NewPending(patientID, doctorID string, start time.Time, now time.Time) *models.Appointment {
	return &models.Appointment{
		ID:        uuid.NewString(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      start.Format(timezone.DateLayout),
		StartTime: start,
		EndTime:   start.Add(Duration),
		Status:    string(InitialStatus()),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply moves ap to status to and stamps the matching timestamp.
func Apply(ap *models.Appointment, to Status, at time.Time) {
	ap.Status = string(to)
	ap.UpdatedAt = at
	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &at
	case StatusDeclined:
		ap.DeclinedAt = &at
	case StatusCancelled:
		ap.CancelledAt = &at
	case StatusCompleted:
		ap.CompletedAt = &at
	}
}

// StampColumn is the column Apply fills for to, empty for pending.
func StampColumn(to Status) string {
	switch to {
	case StatusConfirmed:
		return "confirmed_at"
	case StatusDeclined:
		return "declined_at"
	case StatusCancelled:
		return "cancelled_at"
	case StatusCompleted:
		return "completed_at"
	}
	return ""
}
