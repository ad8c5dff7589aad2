package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise/Shiftwise_Backend/internal/config"
	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// mockJWTValidator is a test double for the JWTValidator interface.
type mockJWTValidator struct {
	claims *CustomClaims
	err    error
}

func (m *mockJWTValidator) ValidateToken(tokenString string, expectedType string) (*CustomClaims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func (m *mockJWTValidator) GetConfig() *config.JWTSettings {
	return &config.JWTSettings{Secret: "test", Expiry: constants.DefaultJWTExpiry}
}

func validClaims() *CustomClaims {
	return &CustomClaims{
		UserID:      7,
		DisplayName: "Test Staff",
		Email:       "staff@example.com",
		Role:        constants.RoleManager,
		TokenType:   constants.TokenTypeAccess,
	}
}

func TestJWTAuthProvider_Authenticate(t *testing.T) {
	t.Run("Valid bearer token", func(t *testing.T) {
		provider := NewJWTAuthProvider(&mockJWTValidator{claims: validClaims()})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(constants.HeaderAuthorization, constants.BearerTokenPrefix+"sometoken")

		claims, err := provider.Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, constants.RoleManager, claims.Role)
	})

	t.Run("Token from cookie", func(t *testing.T) {
		provider := NewJWTAuthProvider(&mockJWTValidator{claims: validClaims()})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: constants.AuthTokenCookie, Value: "sometoken"})

		claims, err := provider.Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
	})

	t.Run("Missing credentials", func(t *testing.T) {
		provider := NewJWTAuthProvider(&mockJWTValidator{claims: validClaims()})

		r := httptest.NewRequest(http.MethodGet, "/", nil)

		_, err := provider.Authenticate(r)
		assert.ErrorIs(t, err, utils.ErrUnauthorized)
	})

	t.Run("Malformed authorization header", func(t *testing.T) {
		provider := NewJWTAuthProvider(&mockJWTValidator{claims: validClaims()})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(constants.HeaderAuthorization, "Basic abc123")

		_, err := provider.Authenticate(r)
		assert.ErrorIs(t, err, utils.ErrUnauthorized)
	})

	t.Run("Invalid token", func(t *testing.T) {
		provider := NewJWTAuthProvider(&mockJWTValidator{err: utils.NewInvalidTokenError()})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(constants.HeaderAuthorization, constants.BearerTokenPrefix+"bad")

		_, err := provider.Authenticate(r)
		assert.Error(t, err)
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Successful authentication populates context", func(t *testing.T) {
		provider := NewJWTAuthProvider(&mockJWTValidator{claims: validClaims()})

		var gotUserID int64
		var gotRole string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID, _ = GetUserID(r)
			gotRole, _ = GetRole(r)
			assert.True(t, IsAuthenticated(r))

			requestID, ok := GetRequestID(r)
			assert.True(t, ok)
			assert.NotEmpty(t, requestID)

			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(constants.HeaderAuthorization, constants.BearerTokenPrefix+"sometoken")
		w := httptest.NewRecorder()

		AuthMiddleware(next, provider).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(7), gotUserID)
		assert.Equal(t, constants.RoleManager, gotRole)
	})

	t.Run("Failed authentication returns 401", func(t *testing.T) {
		provider := NewJWTAuthProvider(&mockJWTValidator{err: utils.NewInvalidTokenError()})

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not be called")
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(constants.HeaderAuthorization, constants.BearerTokenPrefix+"bad")
		w := httptest.NewRecorder()

		AuthMiddleware(next, provider).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	runWithRole := func(role string, middleware func(http.Handler) http.Handler) *httptest.ResponseRecorder {
		provider := NewJWTAuthProvider(&mockJWTValidator{claims: &CustomClaims{
			UserID:    7,
			Role:      role,
			TokenType: constants.TokenTypeAccess,
		}})

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(constants.HeaderAuthorization, constants.BearerTokenPrefix+"sometoken")
		w := httptest.NewRecorder()

		RequireAuth(provider)(middleware(next)).ServeHTTP(w, r)
		return w
	}

	t.Run("Allowed role passes", func(t *testing.T) {
		w := runWithRole(constants.RoleAdmin, RequireRole(constants.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("One of several roles passes", func(t *testing.T) {
		w := runWithRole(constants.RoleManager, RequireRole(constants.RoleAdmin, constants.RoleManager))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Disallowed role is forbidden", func(t *testing.T) {
		w := runWithRole(constants.RoleStaff, RequireRole(constants.RoleAdmin))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unauthenticated request is rejected", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not be called")
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		RequireRole(constants.RoleAdmin)(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("Continues without credentials", func(t *testing.T) {
		provider := NewJWTAuthProvider(&mockJWTValidator{err: utils.NewInvalidTokenError()})

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, IsAuthenticated(r))
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		OptionalAuth(provider)(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Populates context when credentials are valid", func(t *testing.T) {
		provider := NewJWTAuthProvider(&mockJWTValidator{claims: validClaims()})

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, IsAuthenticated(r))
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(constants.HeaderAuthorization, constants.BearerTokenPrefix+"sometoken")
		w := httptest.NewRecorder()

		OptionalAuth(provider)(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
