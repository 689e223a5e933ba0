package models

import "time"

// PermissionGrant lets DoctorID read the medical records of PatientID.
type PermissionGrant struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PatientID string    `gorm:"size:36;not null;uniqueIndex:idx_grants_patient_doctor" json:"patientId"`
	DoctorID  string    `gorm:"size:36;not null;uniqueIndex:idx_grants_patient_doctor;index" json:"doctorId"`
	CreatedAt time.Time `json:"createdAt"`
}
