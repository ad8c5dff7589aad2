// Package server provides the HTTP server implementation for the ShiftWise
// application. It handles routing, middleware configuration, and server
// lifecycle management.
//
// The server follows a structured initialization order with dependency
// injection: database, auth providers, repositories, services, handlers,
// routes. It handles graceful shutdown and periodic maintenance of the
// reset-request table.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/shiftwise/Shiftwise_Backend/internal/auth"
	"github.com/shiftwise/Shiftwise_Backend/internal/config"
	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/database"
	"github.com/shiftwise/Shiftwise_Backend/internal/handlers"
	"github.com/shiftwise/Shiftwise_Backend/internal/repository"
	"github.com/shiftwise/Shiftwise_Backend/internal/service"
	"github.com/shiftwise/Shiftwise_Backend/migrations"
	"github.com/shiftwise/Shiftwise_Backend/scripts"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// AuthHandler manages login and password changes
	AuthHandler *handlers.AuthHandler

	// ResetHandler manages the password-reset workflow
	ResetHandler *handlers.ResetHandler

	// UserHandler manages the staff roster
	UserHandler *handlers.UserHandler

	// DepartmentHandler manages departments and sectors
	DepartmentHandler *handlers.DepartmentHandler

	// ActivityHandler manages scheduled activities
	ActivityHandler *handlers.ActivityHandler
}

// AuthProviders contains the authentication dependencies shared by the
// services and the route middleware.
type AuthProviders struct {
	// JWTService handles token generation and validation
	JWTService *auth.JWTService

	// PasswordCfg contains password hashing parameters
	PasswordCfg *auth.PasswordConfig
}

// repositories holds all repositories used by the server.
type repositories struct {
	userRepo       repository.UserRepository
	resetRepo      repository.ResetRequestRepository
	departmentRepo repository.DepartmentRepository
	sectorRepo     repository.SectorRepository
	activityRepo   repository.ActivityRepository
}

// services holds all business services used by the server.
type services struct {
	authService       *service.AuthService
	resetService      *service.ResetService
	userService       *service.UserService
	departmentService *service.DepartmentService
	activityService   *service.ActivityService
}

// Server represents the API server for the ShiftWise application.
// It encapsulates all server components and handles the server lifecycle,
// including initialization, startup, and graceful shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// authProviders contains authentication services
	authProviders *AuthProviders

	repos repositories
	svcs  services

	// httpServer is the underlying HTTP server
	httpServer *http.Server
}

// NewServer creates a new server instance with all required components.
// Initialization follows a fixed order so every layer finds its
// dependencies ready: database, auth providers, repositories, services,
// handlers, routes.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := s.setupAuthProviders(); err != nil {
		return nil, fmt.Errorf("failed to set up auth providers: %w", err)
	}

	s.setupRepositories()

	if err := s.setupServices(); err != nil {
		return nil, fmt.Errorf("failed to set up services: %w", err)
	}

	s.setupHandlers()
	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupDatabase connects to the database, runs migrations, and seeds
// the initial admin account and organizational structure.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}

	s.Db = db

	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	seeder := scripts.NewSeeder(db, s.Config)
	if err := seeder.SeedDatabase(context.Background()); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	return nil
}

// setupAuthProviders initializes the JWT service and password hashing
// configuration.
func (s *Server) setupAuthProviders() error {
	jwtService := auth.NewJWTService(&s.Config.JWT)
	passwordCfg := auth.ConfigFromAppConfig(s.Config)

	s.authProviders = &AuthProviders{
		JWTService:  jwtService,
		PasswordCfg: passwordCfg,
	}

	return nil
}

// setupRepositories initializes the data access layer.
func (s *Server) setupRepositories() {
	s.repos.userRepo = repository.NewUserRepository(s.Db)
	s.repos.resetRepo = repository.NewResetRequestRepository(s.Db)
	s.repos.departmentRepo = repository.NewDepartmentRepository(s.Db)
	s.repos.sectorRepo = repository.NewSectorRepository(s.Db)
	s.repos.activityRepo = repository.NewActivityRepository(s.Db)
}

// setupServices initializes the business services on top of the
// repositories and auth providers.
func (s *Server) setupServices() error {
	if s.authProviders == nil || s.authProviders.JWTService == nil {
		return fmt.Errorf("JWT service not initialized")
	}
	if s.authProviders.PasswordCfg == nil {
		return fmt.Errorf("password config not initialized")
	}

	s.svcs.authService = service.NewAuthService(
		s.repos.userRepo,
		s.repos.resetRepo,
		s.Db,
		s.authProviders.JWTService,
		s.authProviders.PasswordCfg,
	)

	s.svcs.resetService = service.NewResetService(
		s.repos.userRepo,
		s.repos.resetRepo,
		s.Db,
		auth.DefaultCredentialGenerator(),
		s.authProviders.PasswordCfg,
		&s.Config.Reset,
	)

	s.svcs.userService = service.NewUserService(
		s.repos.userRepo,
		s.repos.sectorRepo,
		s.authProviders.PasswordCfg,
	)

	s.svcs.departmentService = service.NewDepartmentService(
		s.repos.departmentRepo,
		s.repos.sectorRepo,
	)

	s.svcs.activityService = service.NewActivityService(
		s.repos.activityRepo,
		s.repos.sectorRepo,
		s.repos.userRepo,
	)

	return nil
}

// setupHandlers initializes all HTTP request handlers.
func (s *Server) setupHandlers() {
	s.Handlers = &Handlers{
		AuthHandler:       handlers.NewAuthHandler(s.svcs.authService),
		ResetHandler:      handlers.NewResetHandler(s.svcs.resetService),
		UserHandler:       handlers.NewUserHandler(s.svcs.userService),
		DepartmentHandler: handlers.NewDepartmentHandler(s.svcs.departmentService),
		ActivityHandler:   handlers.NewActivityHandler(s.svcs.activityService),
	}
}

// Start starts the HTTP server and blocks until a shutdown signal or a
// server error arrives.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	s.SetupMaintenanceTasks()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// requests before closing the database connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	s.Db.Close()
	log.Info().Msg("Database connection closed")

	return nil
}

// SetupMaintenanceTasks starts the periodic cleanup of dead reset
// requests. Consumed, superseded, and long-expired requests older than
// the retention window are purged; live requests are never touched.
func (s *Server) SetupMaintenanceTasks() {
	ticker := time.NewTicker(constants.DBMaintenanceInterval)
	go func() {
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)

			cutoff := time.Now().Add(-constants.ResetRequestRetention)
			if count, err := s.svcs.resetService.CleanupDeadRequests(ctx, cutoff); err != nil {
				log.Error().Err(err).Msg("Failed to clean up dead reset requests")
			} else if count > 0 {
				log.Info().Int64("count", count).Msg("Cleaned up dead reset requests")
			}

			cancel()
		}
	}()
}
