// Package server provides the HTTP server implementation for the ShiftWise
// application.
//
// This file configures the route tree. Routes are grouped by concern with
// protection applied through middleware: credential endpoints are public but
// rate limited, roster and structure endpoints require authentication, and
// administrative endpoints additionally require the admin role.
package server

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/middleware"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// SetupRoutes configures the routes for the application.
//
// The configured routes include:
//   - Health check and version endpoints (unprotected)
//   - Login and reset-request endpoints (unprotected, rate limited)
//   - Password change and self-service endpoints (authenticated)
//   - Roster, department, sector, and activity endpoints (authenticated,
//     writes restricted by role)
//   - Reset approval endpoints (admin only)
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	allowedOrigins := s.getAllowedOrigins()

	r.Use(corsMiddleware(allowedOrigins))

	// Base middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders())

	// Credential endpoints are throttled per client IP. Without this,
	// the 8-character temporary credentials could be guessed online.
	credentialLimiter := middleware.NewRateLimiter(constants.CredentialRequestsPerMinute, time.Minute)

	// Health check and version routes (unprotected)
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, func(w http.ResponseWriter, r *http.Request) {
			if err := s.Db.HealthCheck(r.Context()); err != nil {
				log.Error().Err(err).Msg("Health check failed")
				utils.Error(w, http.StatusServiceUnavailable, "service_unavailable", "Service is not healthy", nil)
				return
			}

			utils.JSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"version": s.Config.App.Version,
			})
		})

		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})
	})

	// API routes
	r.Route(constants.APIBasePath, func(r chi.Router) {
		// Authentication routes
		r.Route("/auth", func(r chi.Router) {
			// Public credential endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(credentialLimiter))
				r.Post("/login", s.Handlers.AuthHandler.Login)
				r.Post("/reset-requests", s.Handlers.ResetHandler.RequestReset)
			})

			// Protected auth endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(s.authProviders.JWTService))
				r.Post("/change-password", s.Handlers.AuthHandler.ChangePassword)
			})
		})

		// Staff roster routes (all protected)
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.JWTAuth(s.authProviders.JWTService))

			r.Get("/me", s.Handlers.UserHandler.GetCurrentUser)

			// Roster reads for schedulers
			r.Group(func(r chi.Router) {
				r.Use(middleware.SchedulerOnly())
				r.Get("/", s.Handlers.UserHandler.ListUsers)
				r.Get("/{userID}", s.Handlers.UserHandler.GetUser)
			})

			// Roster writes for admins
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly())
				r.Post("/", s.Handlers.UserHandler.CreateUser)
				r.Put("/{userID}", s.Handlers.UserHandler.UpdateUser)
				r.Put("/{userID}/status", s.Handlers.UserHandler.UpdateUserStatus)
				r.Delete("/{userID}", s.Handlers.UserHandler.DeleteUser)
			})
		})

		// Department routes (authenticated reads, admin writes)
		r.Route("/departments", func(r chi.Router) {
			r.Use(middleware.JWTAuth(s.authProviders.JWTService))

			r.Get("/", s.Handlers.DepartmentHandler.ListDepartments)
			r.Get("/{departmentID}", s.Handlers.DepartmentHandler.GetDepartment)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly())
				r.Post("/", s.Handlers.DepartmentHandler.CreateDepartment)
				r.Put("/{departmentID}", s.Handlers.DepartmentHandler.UpdateDepartment)
				r.Delete("/{departmentID}", s.Handlers.DepartmentHandler.DeleteDepartment)
			})
		})

		// Sector routes (authenticated reads, admin writes)
		r.Route("/sectors", func(r chi.Router) {
			r.Use(middleware.JWTAuth(s.authProviders.JWTService))

			r.Get("/", s.Handlers.DepartmentHandler.ListSectors)
			r.Get("/{sectorID}", s.Handlers.DepartmentHandler.GetSector)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly())
				r.Post("/", s.Handlers.DepartmentHandler.CreateSector)
				r.Put("/{sectorID}", s.Handlers.DepartmentHandler.UpdateSector)
				r.Delete("/{sectorID}", s.Handlers.DepartmentHandler.DeleteSector)
			})
		})

		// Activity routes (authenticated reads, scheduler writes)
		r.Route("/activities", func(r chi.Router) {
			r.Use(middleware.JWTAuth(s.authProviders.JWTService))

			r.Get("/", s.Handlers.ActivityHandler.ListActivities)
			r.Get("/{activityID}", s.Handlers.ActivityHandler.GetActivity)

			r.Group(func(r chi.Router) {
				r.Use(middleware.SchedulerOnly())
				r.Post("/", s.Handlers.ActivityHandler.CreateActivity)
				r.Put("/{activityID}", s.Handlers.ActivityHandler.UpdateActivity)
				r.Delete("/{activityID}", s.Handlers.ActivityHandler.DeleteActivity)
			})
		})

		// Reset approval routes (admin only)
		r.Route("/admin/reset-requests", func(r chi.Router) {
			r.Use(middleware.JWTAuth(s.authProviders.JWTService))
			r.Use(middleware.AdminOnly())

			r.Get("/", s.Handlers.ResetHandler.ListPending)
			r.Post("/{requestID}/approve", s.Handlers.ResetHandler.Approve)
		})
	})

	s.router = r
}

// GetRouter returns the configured router.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// corsMiddleware creates a CORS middleware with the specified allowed
// origins. It sets CORS headers on matching responses and answers OPTIONS
// preflight requests directly.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			for _, allowedOrigin := range allowedOrigins {
				if allowedOrigin == "*" || allowedOrigin == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")

					if r.Method != http.MethodOptions {
						next.ServeHTTP(w, r)
						return
					}

					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")
					w.Header().Set("Access-Control-Max-Age", "300")

					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			// Origin not allowed, continue without CORS headers
			next.ServeHTTP(w, r)
		})
	}
}

// getAllowedOrigins resolves the CORS origin allowlist. The ALLOWED_ORIGINS
// environment variable overrides the configuration file.
func (s *Server) getAllowedOrigins() []string {
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		origins := strings.Split(env, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		log.Info().Strs("allowed_origins", origins).Msg("Using CORS allowed origins from environment")
		return origins
	}

	if len(s.Config.CORS.AllowedOrigins) > 0 {
		return s.Config.CORS.AllowedOrigins
	}

	defaultOrigins := []string{"http://localhost:5173", "https://localhost:5173"}
	log.Info().Strs("allowed_origins", defaultOrigins).Msg("Using default CORS allowed origins")
	return defaultOrigins
}
