package middleware

import (
	"net/http"

	"github.com/shiftwise/Shiftwise_Backend/internal/auth"
	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
)

// JWTAuth is a middleware that requires a valid JWT token
func JWTAuth(jwtService auth.JWTValidator) func(http.Handler) http.Handler {
	provider := auth.NewJWTAuthProvider(jwtService)
	return auth.RequireAuth(provider)
}

// AdminOnly is a middleware that requires the authenticated user to hold
// the admin role. It must run after JWTAuth.
func AdminOnly() func(http.Handler) http.Handler {
	return auth.RequireRole(constants.RoleAdmin)
}

// SchedulerOnly is a middleware that requires a role allowed to manage
// the roster and schedule activities. It must run after JWTAuth.
func SchedulerOnly() func(http.Handler) http.Handler {
	return auth.RequireRole(constants.RoleAdmin, constants.RoleManager)
}
