package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const (
	DefaultCategory   = "general"
	minPasswordLength = 6
)

var (
	ErrInvalidEmail       = httperr.Validation("invalid_email", "Email address is not valid.")
	ErrInvalidEmailDomain = httperr.Validation("invalid_email_domain", "The email domain does not accept mail.")
	ErrWeakPassword       = httperr.Validation("weak_password", "Password must have at least 6 characters.")
	ErrMissingName        = httperr.Validation("missing_name", "First and last name are required.")
	ErrInvalidDOB         = httperr.Validation("invalid_dob", "Date of birth must be YYYY-MM-DD.")
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	DOB       string
	Telephone string
	Address   string
	Category  string
}

// ======================================================
// USE CASE
// ======================================================

// RegisterUser creates an account with a fixed role. Patients register
// themselves; doctors are registered by an admin.
type RegisterUser struct {
	users       domain.Repository
	audit       *audit.Dispatcher
	role        access.Role
	checkDomain func(email string) bool
	now         func() time.Time
}

func NewRegisterUser(
	users domain.Repository,
	audit *audit.Dispatcher,
	role access.Role,
	checkMX bool,
) *RegisterUser {
	uc := &RegisterUser{
		users: users,
		audit: audit,
		role:  role,
		now:   time.Now,
	}
	if checkMX {
		uc.checkDomain = validators.IsEmailDomainValid
	}
	return uc
}

// Execute returns the new user. actorID is the admin registering a doctor,
// empty for self-registration.
func (uc *RegisterUser) Execute(
	ctx context.Context,
	actorID string,
	in RegisterInput,
) (*models.User, error) {

	email := validators.NormalizeEmail(in.Email)
	if !validators.IsEmailWellFormed(email) {
		return nil, ErrInvalidEmail
	}
	if uc.checkDomain != nil && !uc.checkDomain(email) {
		return nil, ErrInvalidEmailDomain
	}
	if len(in.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, ErrMissingName
	}
	if in.DOB != "" && !validators.IsDate(in.DOB) {
		return nil, ErrInvalidDOB
	}

	_, err := uc.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := identity.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := uc.now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		DOB:          in.DOB,
		Telephone:    strings.TrimSpace(in.Telephone),
		Address:      strings.TrimSpace(in.Address),
		Role:         string(uc.role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if uc.role == access.RoleDoctor {
		user.Category = strings.ToLower(strings.TrimSpace(in.Category))
		if user.Category == "" {
			user.Category = DefaultCategory
		}
	}

	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.StringPtr(actorID),
		Action:   string(uc.role) + "_registered",
		Entity:   "user",
		EntityID: audit.StringPtr(user.ID),
	})

	return user, nil
}
