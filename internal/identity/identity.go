// Package identity extracts the caller identity from gateway headers.
//
// Authentication itself happens upstream, the gateway is trusted to only
// forward verified values.
package identity

import (
	"errors"
	"net/http"

	"github.com/costwatch/backend/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Headers the gateway sets on every authenticated request.
const (
	HeaderOrganizationID = "X-Organization-ID"
	HeaderUserID         = "X-User-ID"
	HeaderUserRole       = "X-User-Role"
)

const contextKey = "identity"

var (
	ErrNoIdentity  = errors.New("the request is missing the identity headers")
	ErrInvalidRole = errors.New("the specified user role is unknown")
)

// Role is the access level of a user within their organization.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}

	return false
}

// IsAdmin reports whether the role may use admin-gated operations.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Identity is the verified caller of a request.
type Identity struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           Role
}

// Actor converts the identity into the form the ledger operates on.
func (i Identity) Actor() ledger.Actor {
	return ledger.Actor{
		OrganizationID: i.OrganizationID,
		UserID:         i.UserID,
		Admin:          i.Role.IsAdmin(),
	}
}

// Parse builds an Identity from the gateway header values.
func Parse(organizationID, userID, role string) (Identity, error) {
	if organizationID == "" || userID == "" || role == "" {
		return Identity{}, ErrNoIdentity
	}

	org, err := uuid.Parse(organizationID)
	if err != nil {
		return Identity{}, ErrNoIdentity
	}

	user, err := uuid.Parse(userID)
	if err != nil {
		return Identity{}, ErrNoIdentity
	}

	r := Role(role)
	if !r.Valid() {
		return Identity{}, ErrInvalidRole
	}

	return Identity{
		OrganizationID: org,
		UserID:         user,
		Role:           r,
	}, nil
}

// Middleware parses the identity headers and aborts with 401 when they are
// missing or invalid.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := Parse(
			c.GetHeader(HeaderOrganizationID),
			c.GetHeader(HeaderUserID),
			c.GetHeader(HeaderUserRole),
		)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(contextKey, id)
	}
}

// FromContext returns the identity the middleware stored on the context.
func FromContext(c *gin.Context) (Identity, bool) {
	value, ok := c.Get(contextKey)
	if !ok {
		return Identity{}, false
	}

	id, ok := value.(Identity)
	return id, ok
}
