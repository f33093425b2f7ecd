package models

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims are the claims taskdesk reads from tokens issued by the
// identity service. Only the subject is trusted as the user id; everything
// else is informational.
type IdentityClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// UserID returns the opaque user identifier carried by the token.
func (c *IdentityClaims) UserID() string {
	return c.Subject
}
