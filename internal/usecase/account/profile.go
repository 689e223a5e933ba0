package account

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type GetProfile struct {
	users domain.Repository
}

func NewGetProfile(users domain.Repository) *GetProfile {
	return &GetProfile{users: users}
}

func (uc *GetProfile) Execute(ctx context.Context, userID string) (*models.User, error) {
	return uc.users.GetUserByID(ctx, userID)
}

// UpdateProfileInput fields are optional; nil leaves the value untouched.
type UpdateProfileInput struct {
	Name    *string
	DOB     *string
	Address *string
}

type UpdateProfile struct {
	users domain.Repository
}

func NewUpdateProfile(users domain.Repository) *UpdateProfile {
	return &UpdateProfile{users: users}
}

func (uc *UpdateProfile) Execute(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	user, err := uc.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		first, last := SplitName(*in.Name)
		if first == "" {
			return nil, ErrMissingName
		}
		user.FirstName = first
		user.LastName = last
	}
	if in.DOB != nil {
		if *in.DOB != "" && !validators.IsDate(*in.DOB) {
			return nil, ErrInvalidDOB
		}
		user.DOB = *in.DOB
	}
	if in.Address != nil {
		user.Address = strings.TrimSpace(*in.Address)
	}

	if err := uc.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SplitName breaks a display name on its first space.
func SplitName(name string) (first, last string) {
	name = strings.Join(strings.Fields(name), " ")
	first, last, _ = strings.Cut(name, " ")
	return first, last
}
