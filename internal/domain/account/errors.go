package account

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

var (
	ErrUserNotFound       = httperr.ErrBusiness(httperr.KindNotFound, "user_not_found", "User not found.")
	ErrEmailTaken         = httperr.ErrBusiness(httperr.KindConflict, "email_already_registered", "Email is already registered.")
	ErrInvalidCredentials = httperr.ErrBusiness(httperr.KindUnauthenticated, "invalid_credentials", "Invalid email or password.")
)
