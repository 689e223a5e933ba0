package account

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// EnsureAdmin creates the bootstrap admin when no account uses email yet.
// It is a no-op when email or password is empty.
func EnsureAdmin(
	ctx context.Context,
	users domain.Repository,
	email string,
	password string,
	log zerolog.Logger,
) error {

	if email == "" || password == "" {
		return nil
	}

	existing, err := users.GetUserByEmail(ctx, validators.NormalizeEmail(email))
	if err == nil {
		if existing.Role != string(access.RoleAdmin) {
			log.Warn().Str("email", existing.Email).Msg("bootstrap admin email belongs to a non-admin account")
		}
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	register := NewRegisterUser(users, nil, access.RoleAdmin, false)
	admin, err := register.Execute(ctx, "", RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Clinic",
		LastName:  "Admin",
	})
	if err != nil {
		return err
	}

	log.Info().Str("user_id", admin.ID).Msg("bootstrap admin created")
	return nil
}
