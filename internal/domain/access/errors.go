package access

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

var (
	ErrForbidden     = httperr.ErrBusiness(httperr.KindForbidden, "insufficient_role", "Insufficient permissions.")
	ErrNotOwner      = httperr.ErrBusiness(httperr.KindForbidden, "appointment_forbidden", "You are not allowed to act on this appointment.")
	ErrAccessDenied  = httperr.ErrBusiness(httperr.KindAccessDenied, "record_access_denied", "Access to medical records denied.")
	ErrGrantNotFound = httperr.ErrBusiness(httperr.KindNotFound, "grant_not_found", "Permission grant not found.")
	ErrGrantExists   = httperr.ErrBusiness(httperr.KindConflict, "grant_already_exists", "Doctor already has access.")
)
