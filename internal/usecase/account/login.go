package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type LoginResult struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

type Login struct {
	users  domain.Repository
	tokens identity.TokenIssuer
}

func NewLogin(users domain.Repository, tokens identity.TokenIssuer) *Login {
	return &Login{users: users, tokens: tokens}
}

// Execute answers unknown emails and wrong passwords alike.
func (uc *Login) Execute(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.users.GetUserByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !identity.CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID, access.Role(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Role: user.Role, UserID: user.ID}, nil
}
