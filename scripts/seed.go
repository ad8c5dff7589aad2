// Package scripts provides utility scripts for database and system management.
//
// This package implements database seeding functionality to populate initial data
// required for the application to function properly. The seeding system works
// similarly to migrations, tracking executed seeds to ensure they only run once,
// making the process idempotent and safe to run on both new and existing databases.
package scripts

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shiftwise/Shiftwise_Backend/internal/auth"
	"github.com/shiftwise/Shiftwise_Backend/internal/config"
	"github.com/shiftwise/Shiftwise_Backend/internal/constants"
	"github.com/shiftwise/Shiftwise_Backend/internal/database"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// Defaults for the bootstrap admin account. Every value can be overridden
// through the corresponding SEED_ADMIN_* environment variable.
const (
	defaultAdminEmail       = "admin@shiftwise.local"
	defaultAdminNationalID  = "00000000000"
	defaultAdminPassword    = "ChangeMeNow1"
	defaultAdminDisplayName = "System Administrator"

	defaultDepartmentName = "General"
	defaultSectorName     = "Unassigned"
)

// Seeder handles database seeding.
// It provides methods to run seeds that populate the database
// with initial required data.
type Seeder struct {
	db  *database.Pool
	cfg *config.AppConfig
}

// NewSeeder creates a new seeder.
//
// Parameters:
//   - db: A database connection pool to use for seeding
//   - cfg: The application configuration, used for password hashing settings
//
// Returns:
//   - *Seeder: A configured seeder
func NewSeeder(db *database.Pool, cfg *config.AppConfig) *Seeder {
	return &Seeder{
		db:  db,
		cfg: cfg,
	}
}

// SeedDatabase seeds the database with initial data.
// It creates the seeds tracking table if it doesn't exist, then runs
// all seed functions that haven't been executed yet.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	log.Info().Msg("Seeding database")
	startTime := time.Now()

	// Create seeds table if it doesn't exist
	if err := s.createSeedsTable(ctx); err != nil {
		return fmt.Errorf("failed to create seeds table: %w", err)
	}

	// Get executed seeds
	executedSeeds, err := s.getExecutedSeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed seeds: %w", err)
	}

	// Run seeds that haven't been executed yet
	seeds := []struct {
		Name     string
		SeedFunc func(ctx context.Context, tx *sql.Tx) error
	}{
		{"default_department", s.seedDefaultDepartment},
		{"admin_user", s.seedAdminUser},
	}

	for _, seed := range seeds {
		if !executedSeeds[seed.Name] {
			log.Info().Str("seed", seed.Name).Msg("Running seed")
			if err := s.runSeed(ctx, seed.Name, seed.SeedFunc); err != nil {
				return err
			}
		} else {
			log.Debug().Str("seed", seed.Name).Msg("Seed already executed")
		}
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

// createSeedsTable creates the seeds table if it doesn't exist.
// This table tracks which seed operations have been executed.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - error: Any error encountered during table creation, nil if successful
func (s *Seeder) createSeedsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS seeds (
			name VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// getExecutedSeeds returns a map of executed seeds.
// The map keys are seed names and values are always true.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - map[string]bool: A map containing names of executed seeds
//   - error: Any error encountered while retrieving seeds, nil if successful
func (s *Seeder) getExecutedSeeds(ctx context.Context) (map[string]bool, error) {
	query := `SELECT name FROM seeds`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	seeds := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		seeds[name] = true
	}

	return seeds, rows.Err()
}

// runSeed runs a seed function within a transaction.
// If the seed operation fails, the transaction is rolled back.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//   - name: The name of the seed operation
//   - seedFunc: The function that performs the seeding
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) runSeed(ctx context.Context, name string, seedFunc func(ctx context.Context, tx *sql.Tx) error) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		// Run the seed
		if err := seedFunc(ctx, tx); err != nil {
			return fmt.Errorf("seed %s failed: %w", name, err)
		}

		// Record the seed
		query := `INSERT INTO seeds (name) VALUES ($1)`
		_, err := tx.ExecContext(ctx, query, name)
		if err != nil {
			return fmt.Errorf("failed to record seed: %w", err)
		}

		return nil
	})
}

// seedDefaultDepartment seeds a default department with one sector so that
// newly registered staff always have somewhere to be placed.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//   - tx: The SQL transaction to use for the operation
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) seedDefaultDepartment(ctx context.Context, tx *sql.Tx) error {
	var departmentCount int
	countQuery := `SELECT COUNT(*) FROM departments`
	if err := tx.QueryRowContext(ctx, countQuery).Scan(&departmentCount); err != nil {
		return fmt.Errorf("failed to count departments: %w", err)
	}

	if departmentCount > 0 {
		log.Info().Int("existing_departments", departmentCount).Msg("Departments already present, skipping default department seed")
		return nil
	}

	var departmentID int64
	insertDepartment := `
		INSERT INTO departments (name, description)
		VALUES ($1, $2)
		RETURNING department_id
	`
	err := tx.QueryRowContext(ctx, insertDepartment, defaultDepartmentName, "Default department for unassigned staff").Scan(&departmentID)
	if err != nil {
		return fmt.Errorf("failed to insert default department: %w", err)
	}

	insertSector := `INSERT INTO sectors (department_id, name) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, insertSector, departmentID, defaultSectorName); err != nil {
		return fmt.Errorf("failed to insert default sector: %w", err)
	}

	log.Info().
		Str("department", defaultDepartmentName).
		Str("sector", defaultSectorName).
		Msg("Default department seeding completed")

	return nil
}

// seedAdminUser seeds the bootstrap administrator account. The account is
// created with requires_password_change set so the default password cannot
// survive past the first login.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//   - tx: The SQL transaction to use for the operation
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) seedAdminUser(ctx context.Context, tx *sql.Tx) error {
	var adminCount int
	countQuery := `SELECT COUNT(*) FROM users WHERE role = $1`
	if err := tx.QueryRowContext(ctx, countQuery, constants.RoleAdmin).Scan(&adminCount); err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}

	if adminCount > 0 {
		log.Info().Int("existing_admins", adminCount).Msg("Admin account already present, skipping admin seed")
		return nil
	}

	email := envOrDefault("SEED_ADMIN_EMAIL", defaultAdminEmail)
	nationalID := utils.NormalizeNationalID(envOrDefault("SEED_ADMIN_NATIONAL_ID", defaultAdminNationalID))
	password := envOrDefault("SEED_ADMIN_PASSWORD", defaultAdminPassword)
	displayName := envOrDefault("SEED_ADMIN_DISPLAY_NAME", defaultAdminDisplayName)

	if password == defaultAdminPassword {
		log.Warn().
			Str("email", email).
			Msg("Seeding admin account with the default password. Set SEED_ADMIN_PASSWORD to override.")
	}

	hash, salt, err := auth.HashPassword(password, auth.ConfigFromAppConfig(s.cfg))
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	insertQuery := `
		INSERT INTO users (
			national_id, email, display_name, password_hash, salt,
			role, account_status, requires_password_change
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
	`
	_, err = tx.ExecContext(ctx, insertQuery,
		nationalID, email, displayName, hash, salt,
		constants.RoleAdmin, string(models.StatusActive),
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}

	log.Info().
		Str("email", email).
		Msg("Admin account seeding completed")

	return nil
}

// envOrDefault returns the value of the environment variable or the fallback.
func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
