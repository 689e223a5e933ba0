package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
)

const (
	ContextIdentity = "identity"
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware verifies the bearer token and stores the token identity.
func AuthMiddleware(gate *identity.Gate, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gate.Authenticate(c.Request.Context(), bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			httperr.Respond(c, log, err)
			return
		}

		setIdentity(c, id)
		c.Next()
	}
}

// RequireRole admits only users whose stored role is in roles. It must run
// after AuthMiddleware.
func RequireRole(gate *identity.Gate, log zerolog.Logger, roles ...access.Role) gin.HandlerFunc {
	allowed := access.Allow(roles...)

	return func(c *gin.Context) {
		id, _ := CurrentIdentity(c)

		authorized, err := gate.Authorize(c.Request.Context(), id, allowed)
		if err != nil {
			httperr.Respond(c, log, err)
			return
		}

		setIdentity(c, authorized)
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (*identity.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil, false
	}
	id, ok := v.(*identity.Identity)
	return id, ok && id != nil
}

// MustIdentity is for handlers mounted behind RequireRole.
func MustIdentity(c *gin.Context) *identity.Identity {
	return c.MustGet(ContextIdentity).(*identity.Identity)
}

func setIdentity(c *gin.Context, id *identity.Identity) {
	c.Set(ContextIdentity, id)
	c.Set(ContextUserID, id.UserID)
	c.Set(ContextUserRole, string(id.Role))
}

// bearerToken returns "" unless the header uses the Bearer scheme.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
