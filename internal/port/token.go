package port

import "quotedesk/internal/auth"

// TokenValidator verifies bearer tokens and returns their claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}
