package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

var (
	ErrAppointmentNotFound = httperr.ErrBusiness(httperr.KindNotFound, "appointment_not_found", "Appointment not found.")
	ErrDoctorNotFound      = httperr.ErrBusiness(httperr.KindNotFound, "doctor_not_found", "Doctor not found.")
	ErrSlotConflict        = httperr.ErrBusiness(httperr.KindSlotConflict, "slot_conflict", "Time slot is already booked.")
	ErrSlotBusy            = httperr.ErrBusiness(httperr.KindConflict, "slot_busy", "Another booking for this doctor and day is in progress, try again.")
	ErrInvalidDateTime     = httperr.Validation("invalid_date_or_time", "Date must be YYYY-MM-DD and time HH:MM.")
	ErrAppointmentInPast   = httperr.Validation("appointment_in_past", "Appointments cannot be booked in the past.")
)
