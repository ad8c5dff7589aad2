package auth

import (
	"github.com/shiftwise/Shiftwise_Backend/internal/config"
)

// JWTValidator defines the interface for JWT validation
type JWTValidator interface {
	// ValidateToken validates a JWT token and returns its claims if valid
	ValidateToken(tokenString string, expectedType string) (*CustomClaims, error)

	// GetConfig returns the JWT settings configuration
	GetConfig() *config.JWTSettings
}
