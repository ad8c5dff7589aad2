// Package auth provides authentication and authorization functionality for the ShiftWise API.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
// Using a custom type instead of string or int provides type safety for context values.
type ContextKey string

// Context keys for storing authenticated user information and request metadata.
const (
	// UserIDContextKey is the context key for storing the authenticated user ID.
	UserIDContextKey ContextKey = constants.UserIDContextKey

	// DisplayNameContextKey is the context key for storing the authenticated user's display name.
	DisplayNameContextKey ContextKey = constants.DisplayNameContextKey

	// EmailContextKey is the context key for storing the authenticated user's email.
	EmailContextKey ContextKey = constants.EmailContextKey

	// RoleContextKey is the context key for storing the authenticated user's role.
	RoleContextKey ContextKey = constants.RoleContextKey

	// RequestIDContextKey is the context key for storing the unique request ID.
	RequestIDContextKey ContextKey = constants.RequestIDContextKey
)

// AuthProvider defines methods for different authentication mechanisms.
// This interface allows for pluggable authentication strategies.
type AuthProvider interface {
	// Authenticate checks the request and returns the token claims if valid.
	// It extracts credentials from the request, validates them, and returns
	// identifying information about the authenticated user.
	//
	// Parameters:
	//   - r: The HTTP request containing authentication credentials
	//
	// Returns:
	//   - claims: The authenticated user's token claims
	//   - error: An error if authentication fails, nil if successful
	Authenticate(r *http.Request) (*CustomClaims, error)
}

// JWTAuthProvider implements JWT-based authentication.
// It extracts and validates JWT tokens from requests to authenticate users.
type JWTAuthProvider struct {
	jwtService JWTValidator
}

// NewJWTAuthProvider creates a new JWTAuthProvider with the specified JWT validator.
//
// Parameters:
//   - jwtService: A service that can validate JWT tokens
//
// Returns:
//   - A properly initialized JWTAuthProvider
func NewJWTAuthProvider(jwtService JWTValidator) *JWTAuthProvider {
	return &JWTAuthProvider{
		jwtService: jwtService,
	}
}

// Authenticate implements the AuthProvider interface for JWT authentication.
// It extracts the JWT token from the Authorization header or a cookie,
// validates it, and returns the authenticated user's claims.
//
// Parameters:
//   - r: The HTTP request to authenticate
//
// Returns:
//   - claims: The authenticated user's token claims
//   - error: An error if authentication fails, nil if successful
func (p *JWTAuthProvider) Authenticate(r *http.Request) (*CustomClaims, error) {
	// Extract the token from the Authorization header
	authHeader := r.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		// Check for token in cookie as fallback
		cookie, err := r.Cookie(constants.AuthTokenCookie)
		if err != nil {
			return nil, utils.ErrUnauthorized
		}
		authHeader = constants.BearerTokenPrefix + cookie.Value
	}

	// Check if the header has the correct format (Bearer token)
	if !strings.HasPrefix(authHeader, constants.BearerTokenPrefix) {
		return nil, utils.ErrUnauthorized
	}

	// Extract the token by removing the "Bearer " prefix
	token := strings.TrimPrefix(authHeader, constants.BearerTokenPrefix)

	// Validate the token and extract claims
	claims, err := p.jwtService.ValidateToken(token, constants.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// AuthMiddleware wraps an HTTP handler with authentication.
// It tries each provided authentication provider and only allows the request
// to proceed if at least one authentication method succeeds.
//
// Parameters:
//   - next: The HTTP handler to call if authentication succeeds
//   - providers: One or more authentication providers to try
//
// Returns:
//   - An HTTP handler that enforces authentication
func AuthMiddleware(next http.Handler, providers ...AuthProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Generate a request ID if not already present for request tracking
		requestID := r.Header.Get(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			r.Header.Set(constants.HeaderXRequestID, requestID)
		}

		// Add request ID to the context
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)

		// Try each authentication provider until one succeeds
		var lastErr error
		for _, provider := range providers {
			claims, err := provider.Authenticate(r)
			if err == nil {
				// Authentication successful
				// Add user information to the context for use by handlers
				ctx = context.WithValue(ctx, UserIDContextKey, claims.UserID)
				ctx = context.WithValue(ctx, DisplayNameContextKey, claims.DisplayName)
				ctx = context.WithValue(ctx, EmailContextKey, claims.Email)
				ctx = context.WithValue(ctx, RoleContextKey, claims.Role)

				// Log the authentication event
				log.Info().
					Int64("user_id", claims.UserID).
					Str("role", claims.Role).
					Str("request_id", requestID).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("User authenticated")

				// Call the next handler with the updated context
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			lastErr = err
		}

		// If we get here, all authentication methods failed
		log.Info().
			Err(lastErr).
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Authentication failed")

		// Handle different authentication errors with appropriate responses
		var appErr *utils.AppError
		if errors.As(lastErr, &appErr) {
			utils.ErrorFromAppError(w, appErr)
		} else if errors.Is(lastErr, utils.ErrUnauthorized) {
			utils.Unauthorized(w, constants.MsgAuthRequired)
		} else if errors.Is(lastErr, utils.ErrExpiredToken) {
			utils.Error(w, constants.StatusUnauthorized, constants.CodeTokenExpired, constants.MsgTokenExpired, nil)
		} else {
			utils.Error(w, constants.StatusUnauthorized, constants.CodeAuthenticationFailed, constants.MsgAuthRequired, nil)
		}
	})
}

// RequireAuth is a middleware that requires authentication.
// It returns a middleware function that can be used in HTTP routers.
//
// Parameters:
//   - providers: One or more authentication providers to try
//
// Returns:
//   - A middleware function that requires authentication
func RequireAuth(providers ...AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return AuthMiddleware(next, providers...)
	}
}

// RequireRole restricts a route to callers holding one of the given roles.
// It must run after RequireAuth so the role claim is already in the context.
//
// Parameters:
//   - roles: The roles permitted to access the wrapped routes
//
// Returns:
//   - A middleware function that enforces the role check
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r)
			if !ok {
				utils.Unauthorized(w, constants.MsgAuthRequired)
				return
			}

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			requestID, _ := GetRequestID(r)
			log.Warn().
				Str("role", role).
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Access denied by role check")

			utils.Forbidden(w, constants.MsgAccessDenied)
		})
	}
}

// OptionalAuth is a middleware that attempts authentication but continues even if it fails.
// This is useful for routes that can work with or without authentication.
//
// Parameters:
//   - providers: One or more authentication providers to try
//
// Returns:
//   - A middleware function that attempts but doesn't require authentication
func OptionalAuth(providers ...AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Generate a request ID if not already present
			requestID := r.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
				r.Header.Set(constants.HeaderXRequestID, requestID)
			}

			// Add request ID to the context
			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)

			// Try each authentication provider, but don't require success
			for _, provider := range providers {
				claims, err := provider.Authenticate(r)
				if err == nil {
					// Authentication successful, add user info to context
					ctx = context.WithValue(ctx, UserIDContextKey, claims.UserID)
					ctx = context.WithValue(ctx, DisplayNameContextKey, claims.DisplayName)
					ctx = context.WithValue(ctx, EmailContextKey, claims.Email)
					ctx = context.WithValue(ctx, RoleContextKey, claims.Role)

					break
				}
			}

			// Call the next handler with the updated context (authenticated or not)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDContextKey).(int64)
	return userID, ok
}

// GetDisplayName extracts the display name from the request context.
// It returns the display name and a boolean indicating if it was found.
func GetDisplayName(r *http.Request) (string, bool) {
	displayName, ok := r.Context().Value(DisplayNameContextKey).(string)
	return displayName, ok
}

// GetEmail extracts the email from the request context.
// It returns the email and a boolean indicating if it was found.
func GetEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(EmailContextKey).(string)
	return email, ok
}

// GetRole extracts the role from the request context.
// It returns the role and a boolean indicating if it was found.
func GetRole(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(RoleContextKey).(string)
	return role, ok
}

// GetRequestID extracts the request ID from the request context.
// It returns the request ID and a boolean indicating if it was found.
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDContextKey).(string)
	return requestID, ok
}

// IsAuthenticated checks if the request is authenticated.
// It returns true if a user ID is present in the context.
func IsAuthenticated(r *http.Request) bool {
	_, ok := GetUserID(r)
	return ok
}
