package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/shiftwise/Shiftwise_Backend/internal/database"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// ResetRequestRepository defines methods for interacting with password-reset
// request data. Expiry is never stored as a state transition; every query
// that cares about validity carries the probe instant and evaluates it
// against expires_at.
type ResetRequestRepository interface {
	Create(ctx context.Context, request *models.ResetRequest) error
	GetByID(ctx context.Context, id int64) (*models.ResetRequest, error)
	GetCurrentlyValidByUserID(ctx context.Context, userID int64, now time.Time) (*models.ResetRequest, error)
	GetActiveByUserID(ctx context.Context, userID int64, now time.Time) (*models.ResetRequest, error)
	ListActive(ctx context.Context, now time.Time) ([]*models.ResetRequestSummary, error)
	Approve(ctx context.Context, id int64, adminID int64, credentialHash, credentialSalt string, approvedAt, expiresAt time.Time) error
	ApproveTx(ctx context.Context, tx *sql.Tx, id int64, adminID int64, credentialHash, credentialSalt string, approvedAt, expiresAt time.Time) error
	Consume(ctx context.Context, id int64, now time.Time) error
	ConsumeTx(ctx context.Context, tx *sql.Tx, id int64, now time.Time) error
	Supersede(ctx context.Context, userID int64, now time.Time) error
	DiscardExpired(ctx context.Context, userID int64, now time.Time) error
	PurgeDead(ctx context.Context, before time.Time) (int64, error)
}

// resetRequestColumns is the scan order shared by the single-row getters.
const resetRequestColumns = `request_id, user_id, temp_credential_hash, temp_credential_salt,
       expires_at, approved_by, approved_at, used, used_at, deleted, deleted_at, created_at`

// PostgresResetRequestRepository is a PostgreSQL implementation of ResetRequestRepository
type PostgresResetRequestRepository struct {
	db *database.Pool
}

// NewResetRequestRepository creates a new ResetRequestRepository
func NewResetRequestRepository(db *database.Pool) ResetRequestRepository {
	return &PostgresResetRequestRepository{
		db: db,
	}
}

// Create inserts a new unapproved reset request. A partial unique index on
// reset_requests(user_id) over live rows enforces the one-active-request
// rule, so two racing writers cannot both insert; the loser's 23505 is
// surfaced as the same conflict the slow path reports.
func (r *PostgresResetRequestRepository) Create(ctx context.Context, request *models.ResetRequest) error {
	// Start query timer
	startTime := time.Now()

	request.CreatedAt = time.Now()

	query := `
        INSERT INTO reset_requests (user_id, used, deleted, created_at)
        VALUES ($1, FALSE, FALSE, $2)
        RETURNING request_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		request.UserID,
		request.CreatedAt,
	).Scan(&request.ID)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{request.UserID, request.CreatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			// 23505 from the live-rows partial unique index
			if pqErr.Code == "23505" {
				return utils.NewConflictError("an active reset request already exists for this user")
			}
		}
		return fmt.Errorf("failed to create reset request: %w", err)
	}

	log.Info().
		Int64("request_id", request.ID).
		Int64("user_id", request.UserID).
		Msg("Reset request created")

	return nil
}

// GetByID retrieves a reset request by ID
func (r *PostgresResetRequestRepository) GetByID(ctx context.Context, id int64) (*models.ResetRequest, error) {
	// Start query timer
	startTime := time.Now()

	query := `
        SELECT ` + resetRequestColumns + `
        FROM reset_requests
        WHERE request_id = $1
    `

	request := &models.ResetRequest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&request.ID,
		&request.UserID,
		&request.TempCredentialHash,
		&request.TempCredentialSalt,
		&request.ExpiresAt,
		&request.ApprovedBy,
		&request.ApprovedAt,
		&request.Used,
		&request.UsedAt,
		&request.Deleted,
		&request.DeletedAt,
		&request.CreatedAt,
	)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("ResetRequest", id)
		}
		return nil, fmt.Errorf("failed to get reset request by ID: %w", err)
	}

	return request, nil
}

// GetCurrentlyValidByUserID retrieves the user's approved, unconsumed,
// unexpired request, if any. At most one such row can exist per user.
func (r *PostgresResetRequestRepository) GetCurrentlyValidByUserID(ctx context.Context, userID int64, now time.Time) (*models.ResetRequest, error) {
	// Start query timer
	startTime := time.Now()

	query := `
        SELECT ` + resetRequestColumns + `
        FROM reset_requests
        WHERE user_id = $1
          AND NOT deleted
          AND approved_at IS NOT NULL
          AND NOT used
          AND expires_at > $2
    `

	request := &models.ResetRequest{}
	err := r.db.QueryRowContext(ctx, query, userID, now).Scan(
		&request.ID,
		&request.UserID,
		&request.TempCredentialHash,
		&request.TempCredentialSalt,
		&request.ExpiresAt,
		&request.ApprovedBy,
		&request.ApprovedAt,
		&request.Used,
		&request.UsedAt,
		&request.Deleted,
		&request.DeletedAt,
		&request.CreatedAt,
	)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{userID, now},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("ResetRequest", fmt.Sprintf("user_id=%d", userID))
		}
		return nil, fmt.Errorf("failed to get valid reset request: %w", err)
	}

	return request, nil
}

// GetActiveByUserID retrieves the user's request that still occupies the
// single live slot: awaiting approval, or approved and still valid.
func (r *PostgresResetRequestRepository) GetActiveByUserID(ctx context.Context, userID int64, now time.Time) (*models.ResetRequest, error) {
	// Start query timer
	startTime := time.Now()

	query := `
        SELECT ` + resetRequestColumns + `
        FROM reset_requests
        WHERE user_id = $1
          AND NOT deleted
          AND (approved_at IS NULL OR (NOT used AND expires_at > $2))
    `

	request := &models.ResetRequest{}
	err := r.db.QueryRowContext(ctx, query, userID, now).Scan(
		&request.ID,
		&request.UserID,
		&request.TempCredentialHash,
		&request.TempCredentialSalt,
		&request.ExpiresAt,
		&request.ApprovedBy,
		&request.ApprovedAt,
		&request.Used,
		&request.UsedAt,
		&request.Deleted,
		&request.DeletedAt,
		&request.CreatedAt,
	)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{userID, now},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("ResetRequest", fmt.Sprintf("user_id=%d", userID))
		}
		return nil, fmt.Errorf("failed to get active reset request: %w", err)
	}

	return request, nil
}

// ListActive retrieves every active request joined with its owner's identity
// for the admin approval screen.
func (r *PostgresResetRequestRepository) ListActive(ctx context.Context, now time.Time) ([]*models.ResetRequestSummary, error) {
	// Start query timer
	startTime := time.Now()

	query := `
        SELECT r.request_id, r.user_id, u.national_id, u.email, u.display_name,
               r.approved_at, r.expires_at, r.created_at
        FROM reset_requests r
        JOIN users u ON u.user_id = r.user_id
        WHERE NOT r.deleted
          AND (r.approved_at IS NULL OR (NOT r.used AND r.expires_at > $1))
        ORDER BY r.created_at ASC
    `

	rows, err := r.db.QueryContext(ctx, query, now)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{now},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to list active reset requests: %w", err)
	}
	defer rows.Close()

	var summaries []*models.ResetRequestSummary
	for rows.Next() {
		summary := &models.ResetRequestSummary{}
		if err := rows.Scan(
			&summary.ID,
			&summary.UserID,
			&summary.NationalID,
			&summary.Email,
			&summary.DisplayName,
			&summary.ApprovedAt,
			&summary.ExpiresAt,
			&summary.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reset request summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reset request rows: %w", err)
	}

	return summaries, nil
}

// Approve attaches the hashed temporary credential to a request. The update
// is guarded by approved_at IS NULL so approval happens at most once; a
// second approver loses the race and gets a conflict, never a silent
// re-approval.
func (r *PostgresResetRequestRepository) Approve(ctx context.Context, id int64, adminID int64, credentialHash, credentialSalt string, approvedAt, expiresAt time.Time) error {
	return r.approve(ctx, r.db, id, adminID, credentialHash, credentialSalt, approvedAt, expiresAt)
}

// ApproveTx is Approve running on an existing transaction, for callers that
// must commit the approval together with other writes.
func (r *PostgresResetRequestRepository) ApproveTx(ctx context.Context, tx *sql.Tx, id int64, adminID int64, credentialHash, credentialSalt string, approvedAt, expiresAt time.Time) error {
	return r.approve(ctx, tx, id, adminID, credentialHash, credentialSalt, approvedAt, expiresAt)
}

func (r *PostgresResetRequestRepository) approve(ctx context.Context, db execer, id int64, adminID int64, credentialHash, credentialSalt string, approvedAt, expiresAt time.Time) error {
	// Start query timer
	startTime := time.Now()

	query := `
        UPDATE reset_requests
        SET temp_credential_hash = $1, temp_credential_salt = $2,
            approved_by = $3, approved_at = $4, expires_at = $5
        WHERE request_id = $6
          AND approved_at IS NULL
          AND NOT deleted
    `

	result, err := db.ExecContext(
		ctx,
		query,
		credentialHash,
		credentialSalt,
		adminID,
		approvedAt,
		expiresAt,
		id,
	)

	// Log the query execution (without sensitive data)
	utils.LogDBQuery(
		query,
		[]interface{}{"[REDACTED]", "[REDACTED]", adminID, approvedAt, expiresAt, id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to approve reset request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Distinguish a missing request from one that lost the approval race.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return utils.NewConflictError("reset request has already been approved")
	}

	log.Info().
		Int64("request_id", id).
		Int64("approved_by", adminID).
		Time("expires_at", expiresAt).
		Msg("Reset request approved")

	return nil
}

// Consume marks a currently-valid request as used. See ConsumeTx.
func (r *PostgresResetRequestRepository) Consume(ctx context.Context, id int64, now time.Time) error {
	return consumeResetRequest(ctx, r.db, id, now)
}

// ConsumeTx is Consume running on an existing transaction, for callers that
// must commit the consumption together with other writes.
func (r *PostgresResetRequestRepository) ConsumeTx(ctx context.Context, tx *sql.Tx, id int64, now time.Time) error {
	return consumeResetRequest(ctx, tx, id, now)
}

// execer covers both *sql.Tx and the pool for the conditional consume.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// consumeResetRequest performs the single-use transition. The WHERE clause
// re-checks every validity condition, so of two racing logins exactly one
// observes rowsAffected == 1; the other sees 0 and must treat the credential
// as invalid.
func consumeResetRequest(ctx context.Context, db execer, id int64, now time.Time) error {
	// Start query timer
	startTime := time.Now()

	query := `
        UPDATE reset_requests
        SET used = TRUE, used_at = $1
        WHERE request_id = $2
          AND NOT used
          AND NOT deleted
          AND approved_at IS NOT NULL
          AND expires_at > $3
    `

	result, err := db.ExecContext(ctx, query, now, id, now)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{now, id, now},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to consume reset request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Lost the race, expired in the meantime, or never valid. All of
		// these look the same to the caller.
		return utils.NewInvalidCredentialsError()
	}

	log.Info().
		Int64("request_id", id).
		Msg("Reset request consumed")

	return nil
}

// Supersede soft-deletes the user's still-unapproved request. Approved
// requests are left untouched; a normal login never cancels a credential an
// admin has already handed out.
func (r *PostgresResetRequestRepository) Supersede(ctx context.Context, userID int64, now time.Time) error {
	// Start query timer
	startTime := time.Now()

	query := `
        UPDATE reset_requests
        SET deleted = TRUE, deleted_at = $1
        WHERE user_id = $2
          AND NOT deleted
          AND approved_at IS NULL
    `

	result, err := r.db.ExecContext(ctx, query, now, userID)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{now, userID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to supersede reset request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		log.Info().
			Int64("user_id", userID).
			Int64("superseded", rowsAffected).
			Msg("Unapproved reset request superseded by normal login")
	}

	return nil
}

// DiscardExpired soft-deletes the user's approved requests whose credential
// expired without being consumed. They no longer constrain anything, but they
// still occupy the live-rows slot until marked deleted, so a new request for
// the same user frees the slot through this call first.
func (r *PostgresResetRequestRepository) DiscardExpired(ctx context.Context, userID int64, now time.Time) error {
	// Start query timer
	startTime := time.Now()

	query := `
        UPDATE reset_requests
        SET deleted = TRUE, deleted_at = $1
        WHERE user_id = $2
          AND NOT deleted
          AND approved_at IS NOT NULL
          AND NOT used
          AND expires_at <= $1
    `

	result, err := r.db.ExecContext(ctx, query, now, userID)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{now, userID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to discard expired reset requests: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		log.Info().
			Int64("user_id", userID).
			Int64("discarded", rowsAffected).
			Msg("Expired reset requests discarded")
	}

	return nil
}

// PurgeDead hard-deletes rows that can no longer affect any login: consumed,
// superseded, or expired, and created before the cutoff. Purely operational
// garbage collection; validity never depends on it running.
func (r *PostgresResetRequestRepository) PurgeDead(ctx context.Context, before time.Time) (int64, error) {
	// Start query timer
	startTime := time.Now()

	query := `
        DELETE FROM reset_requests
        WHERE created_at < $1
          AND (deleted OR used OR (approved_at IS NOT NULL AND expires_at <= $2))
    `

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, before, now)

	// Log the query execution
	utils.LogDBQuery(
		query,
		[]interface{}{before, now},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return 0, fmt.Errorf("failed to purge dead reset requests: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		log.Info().
			Int64("purged", rowsAffected).
			Msg("Dead reset requests purged")
	}

	return rowsAffected, nil
}
