package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/shiftwise/Shiftwise_Backend/internal/database"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// UserRepository defines methods for interacting with user data
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByNationalID(ctx context.Context, nationalID string) (*models.User, error)
	List(ctx context.Context, page, pageSize int) ([]*models.User, int, error)
	Update(ctx context.Context, user *models.User) error
	UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error
	SetRequiresPasswordChange(ctx context.Context, id int64, required bool) error
	SetRequiresPasswordChangeTx(ctx context.Context, tx *sql.Tx, id int64, required bool) error
	ChangePassword(ctx context.Context, id int64, passwordHash, salt string) error
	ChangePasswordTx(ctx context.Context, tx *sql.Tx, id int64, passwordHash, salt string) error
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByNationalID(ctx context.Context, nationalID string) (bool, error)
}

// userColumns is the scan order shared by the single-row getters.
const userColumns = `user_id, national_id, email, display_name, password_hash, salt,
       role, sector_id, position, account_status, requires_password_change, created_at, updated_at`

// PostgresUserRepository is a PostgreSQL implementation of UserRepository
type PostgresUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.NationalID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.Salt,
		&user.Role,
		&user.SectorID,
		&user.Position,
		&user.AccountStatus,
		&user.RequiresPasswordChange,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create adds a new user to the database
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	// Start query timer
	startTime := time.Now()

	// Set created/updated timestamps
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	// Define the query with RETURNING for PostgreSQL
	query := `
        INSERT INTO users (national_id, email, display_name, password_hash, salt,
                           role, sector_id, position, account_status, requires_password_change,
                           created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING user_id
    `

	// Execute the query
	err := r.db.QueryRowContext(
		ctx,
		query,
		user.NationalID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.Salt,
		user.Role,
		user.SectorID,
		user.Position,
		user.AccountStatus,
		user.RequiresPasswordChange,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{user.NationalID, user.Email, user.DisplayName, "[REDACTED]", "[REDACTED]",
			user.Role, user.SectorID, user.Position, user.AccountStatus, user.RequiresPasswordChange,
			user.CreatedAt, user.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		// Check for unique constraint violations using PostgreSQL error handling
		if pqErr, ok := err.(*pq.Error); ok {
			// 23505 is the PostgreSQL error code for unique_violation
			if pqErr.Code == "23505" {
				// Check which constraint was violated
				if strings.Contains(pqErr.Constraint, "national_id") {
					return utils.NewDuplicateError("User", "national_id", utils.MaskNationalID(user.NationalID))
				}
				if strings.Contains(pqErr.Constraint, "email") {
					return utils.NewDuplicateError("User", "email", user.Email)
				}
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Str("role", user.Role).
		Str("status", string(user.AccountStatus)).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE user_id = $1
    `

	// Execute the query
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", id)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query with case-insensitive comparison for PostgreSQL
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE LOWER(email) = LOWER($1)
    `

	// Execute the query
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{email},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", fmt.Sprintf("email=%s", utils.MaskEmail(email)))
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByNationalID retrieves a user by their normalized national id digits
func (r *PostgresUserRepository) GetByNationalID(ctx context.Context, nationalID string) (*models.User, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE national_id = $1
    `

	// Execute the query
	user, err := scanUser(r.db.QueryRowContext(ctx, query, nationalID))

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{utils.MaskNationalID(nationalID)},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", fmt.Sprintf("national_id=%s", utils.MaskNationalID(nationalID)))
		}
		return nil, fmt.Errorf("failed to get user by national id: %w", err)
	}

	return user, nil
}

// List retrieves a page of users ordered by display name, plus the total count
func (r *PostgresUserRepository) List(ctx context.Context, page, pageSize int) ([]*models.User, int, error) {
	// Start query timer
	startTime := time.Now()

	countQuery := `SELECT COUNT(*) FROM users`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
        SELECT ` + userColumns + `
        FROM users
        ORDER BY display_name ASC
        LIMIT $1 OFFSET $2
    `

	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{pageSize, offset},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID,
			&user.NationalID,
			&user.Email,
			&user.DisplayName,
			&user.PasswordHash,
			&user.Salt,
			&user.Role,
			&user.SectorID,
			&user.Position,
			&user.AccountStatus,
			&user.RequiresPasswordChange,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

// Update updates a user's roster attributes in the database
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	// Start query timer
	startTime := time.Now()

	// Update the updated_at timestamp
	user.UpdatedAt = time.Now()

	// Define the query
	query := `
        UPDATE users
        SET email = $1, display_name = $2, role = $3, sector_id = $4, position = $5, updated_at = $6
        WHERE user_id = $7
    `

	// Execute the query
	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Email,
		user.DisplayName,
		user.Role,
		user.SectorID,
		user.Position,
		user.UpdatedAt,
		user.ID,
	)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{user.Email, user.DisplayName, user.Role, user.SectorID, user.Position, user.UpdatedAt, user.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		// Check for unique constraint violations using PostgreSQL error handling
		if pqErr, ok := err.(*pq.Error); ok {
			// 23505 is the PostgreSQL error code for unique_violation
			if pqErr.Code == "23505" {
				if strings.Contains(pqErr.Constraint, "email") {
					return utils.NewDuplicateError("User", "email", user.Email)
				}
			}
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	// Check if any rows were affected
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", user.ID)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("User updated")

	return nil
}

// UpdateStatus moves a user to a new account lifecycle state
func (r *PostgresUserRepository) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error {
	// Start query timer
	startTime := time.Now()

	query := `
        UPDATE users
        SET account_status = $1, updated_at = $2
        WHERE user_id = $3
    `

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, status, now, id)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{status, now, id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	log.Info().
		Int64("user_id", id).
		Str("status", string(status)).
		Msg("User status updated")

	return nil
}

// SetRequiresPasswordChange flips the forced-change flag on a user
func (r *PostgresUserRepository) SetRequiresPasswordChange(ctx context.Context, id int64, required bool) error {
	return setRequiresPasswordChange(ctx, r.db, id, required)
}

// SetRequiresPasswordChangeTx is SetRequiresPasswordChange running on an
// existing transaction, for callers that must commit the flag together with
// other writes.
func (r *PostgresUserRepository) SetRequiresPasswordChangeTx(ctx context.Context, tx *sql.Tx, id int64, required bool) error {
	return setRequiresPasswordChange(ctx, tx, id, required)
}

func setRequiresPasswordChange(ctx context.Context, db execer, id int64, required bool) error {
	// Start query timer
	startTime := time.Now()

	query := `
        UPDATE users
        SET requires_password_change = $1, updated_at = $2
        WHERE user_id = $3
    `

	now := time.Now()
	result, err := db.ExecContext(ctx, query, required, now, id)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{required, now, id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to set requires_password_change: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	return nil
}

// ChangePassword installs a new permanent password and clears the
// forced-change flag
func (r *PostgresUserRepository) ChangePassword(ctx context.Context, id int64, passwordHash, salt string) error {
	return changeUserPassword(ctx, r.db, id, passwordHash, salt)
}

// ChangePasswordTx is ChangePassword running on an existing transaction, for
// callers that must commit it together with other writes.
func (r *PostgresUserRepository) ChangePasswordTx(ctx context.Context, tx *sql.Tx, id int64, passwordHash, salt string) error {
	return changeUserPassword(ctx, tx, id, passwordHash, salt)
}

func changeUserPassword(ctx context.Context, db execer, id int64, passwordHash, salt string) error {
	// Start query timer
	startTime := time.Now()

	// Define the query
	query := `
        UPDATE users
        SET password_hash = $1, salt = $2, requires_password_change = FALSE, updated_at = $3
        WHERE user_id = $4
    `

	// Execute the query
	now := time.Now()
	result, err := db.ExecContext(
		ctx,
		query,
		passwordHash,
		salt,
		now,
		id,
	)

	// Log the query execution (without sensitive data)
	utils.LogDBQuery(
		query,
		[]interface{}{"[REDACTED]", "[REDACTED]", now, id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Check if any rows were affected
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("User", id)
	}

	log.Info().
		Int64("user_id", id).
		Msg("User password changed")

	return nil
}

// Delete removes a user from the database
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	// Start query timer
	startTime := time.Now()

	// Execute the delete within a transaction so the user's reset requests
	// go with them
	return r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM reset_requests WHERE user_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete user reset requests: %w", err)
		}

		query := "DELETE FROM users WHERE user_id = $1"
		result, err := tx.ExecContext(ctx, query, id)

		// Log the query execution
		utils.LogDBQuery(
			query,
			[]interface{}{id},
			time.Since(startTime),
			err,
		)

		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		// Check if any rows were affected
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			return utils.NewNotFoundError("User", id)
		}

		log.Info().
			Int64("user_id", id).
			Msg("User deleted")

		return nil
	})
}

// ExistsByEmail checks if a user with the given email exists
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query for PostgreSQL
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`

	// Execute the query
	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{email},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return false, fmt.Errorf("failed to check if email exists: %w", err)
	}

	return exists, nil
}

// ExistsByNationalID checks if a user with the given national id exists
func (r *PostgresUserRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	// Start query timer
	startTime := time.Now()

	// Define the query for PostgreSQL
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE national_id = $1)`

	// Execute the query
	var exists bool
	err := r.db.QueryRowContext(ctx, query, nationalID).Scan(&exists)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{utils.MaskNationalID(nationalID)},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return false, fmt.Errorf("failed to check if national id exists: %w", err)
	}

	return exists, nil
}
