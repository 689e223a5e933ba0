package models

import "time"

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	PatientID string `gorm:"size:36;not null;index" json:"patientId"`
	DoctorID  string `gorm:"size:36;not null;index:idx_appointments_doctor_date" json:"doctorId"`

	// Date is the calendar day (YYYY-MM-DD) the slot belongs to.
	Date      string    `gorm:"size:10;not null;index:idx_appointments_doctor_date" json:"date"`
	StartTime time.Time `gorm:"not null" json:"time"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	DeclinedAt  *time.Time `json:"declinedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
