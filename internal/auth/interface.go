package auth

import "taskdesk/internal/domain/models"

// TokenVerifier validates bearer tokens issued by the identity service.
// taskdesk never issues tokens itself; it only checks signatures and reads
// the subject claim as the opaque user id.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*models.IdentityClaims, error)
}
