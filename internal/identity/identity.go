package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var (
	ErrMissingCredential = httperr.ErrBusiness(httperr.KindUnauthenticated, "missing_authorization_header", "Authentication required.")
	ErrInvalidToken      = httperr.ErrBusiness(httperr.KindUnauthenticated, "invalid_token", "Invalid or expired token.")
)

// Identity is the authenticated principal of a request.
type Identity struct {
	UserID string
	Role   access.Role
	Claims jwt.MapClaims
}

type TokenIssuer interface {
	Issue(userID string, role access.Role) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Gate turns a bearer credential into an Identity and checks it against a
// route's allow-set.
type Gate struct {
	verifier TokenVerifier
	users    UserLookup
}

func NewGate(verifier TokenVerifier, users UserLookup) *Gate {
	return &Gate{verifier: verifier, users: users}
}

func (g *Gate) Authenticate(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, ErrMissingCredential
	}
	id, err := g.verifier.Verify(credential)
	if err != nil || id == nil || id.UserID == "" {
		return nil, ErrInvalidToken
	}
	return id, nil
}

// Authorize reloads the user and checks the persisted role. The returned
// Identity carries that role, not the one claimed by the token.
func (g *Gate) Authorize(ctx context.Context, id *Identity, allowed access.RoleSet) (*Identity, error) {
	if id == nil || id.UserID == "" {
		return nil, ErrMissingCredential
	}

	user, err := g.users.GetUserByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			return nil, access.ErrForbidden
		}
		return nil, fmt.Errorf("load user %s: %w", id.UserID, err)
	}

	role, ok := access.ParseRole(user.Role)
	if !ok || !allowed.Contains(role) {
		return nil, access.ErrForbidden
	}

	return &Identity{UserID: user.ID, Role: role, Claims: id.Claims}, nil
}
