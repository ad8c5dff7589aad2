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

// ActivityFilter narrows an activity listing. The caller's sector and its
// department drive the visibility rules; From/To bound the time window.
type ActivityFilter struct {
	SectorID     *int64
	DepartmentID *int64
	From         *time.Time
	To           *time.Time
}

// ActivityRepository defines methods for interacting with activity data
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id int64) (*models.Activity, error)
	ListVisible(ctx context.Context, filter ActivityFilter) ([]*models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id int64) error
}

const activityColumns = `activity_id, sector_id, title, description, starts_at, ends_at,
       visibility, created_by, created_at, updated_at`

// PostgresActivityRepository is a PostgreSQL implementation of ActivityRepository
type PostgresActivityRepository struct {
	db *database.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *database.Pool) ActivityRepository {
	return &PostgresActivityRepository{
		db: db,
	}
}

// Create adds a new activity to the database
func (r *PostgresActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	startTime := time.Now()

	now := time.Now()
	activity.CreatedAt = now
	activity.UpdatedAt = now

	query := `
        INSERT INTO activities (sector_id, title, description, starts_at, ends_at,
                                visibility, created_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING activity_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		activity.SectorID,
		activity.Title,
		activity.Description,
		activity.StartsAt,
		activity.EndsAt,
		activity.Visibility,
		activity.CreatedBy,
		activity.CreatedAt,
		activity.UpdatedAt,
	).Scan(&activity.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{activity.SectorID, activity.Title, activity.Description, activity.StartsAt,
			activity.EndsAt, activity.Visibility, activity.CreatedBy, activity.CreatedAt, activity.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		// 23503 when the sector does not exist
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return utils.NewNotFoundError("Sector", activity.SectorID)
		}
		return fmt.Errorf("failed to create activity: %w", err)
	}

	log.Info().
		Int64("activity_id", activity.ID).
		Int64("sector_id", activity.SectorID).
		Str("title", activity.Title).
		Msg("Activity created")

	return nil
}

// GetByID retrieves an activity by ID
func (r *PostgresActivityRepository) GetByID(ctx context.Context, id int64) (*models.Activity, error) {
	startTime := time.Now()

	query := `
        SELECT ` + activityColumns + `
        FROM activities
        WHERE activity_id = $1
    `

	activity := &models.Activity{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&activity.ID,
		&activity.SectorID,
		&activity.Title,
		&activity.Description,
		&activity.StartsAt,
		&activity.EndsAt,
		&activity.Visibility,
		&activity.CreatedBy,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Activity", id)
		}
		return nil, fmt.Errorf("failed to get activity by ID: %w", err)
	}

	return activity, nil
}

// ListVisible retrieves the activities the caller is allowed to see.
// Company-wide activities are visible to everyone; department-level ones to
// staff whose sector belongs to the same department; sector-level ones only
// to staff of that sector. A caller with no sector sees company activities
// only.
func (r *PostgresActivityRepository) ListVisible(ctx context.Context, filter ActivityFilter) ([]*models.Activity, error) {
	startTime := time.Now()

	query := `
        SELECT a.activity_id, a.sector_id, a.title, a.description, a.starts_at, a.ends_at,
               a.visibility, a.created_by, a.created_at, a.updated_at
        FROM activities a
        JOIN sectors s ON s.sector_id = a.sector_id
        WHERE (
            a.visibility = 'company'
            OR (a.visibility = 'department' AND $1::bigint IS NOT NULL AND s.department_id = $1)
            OR (a.visibility = 'sector' AND $2::bigint IS NOT NULL AND a.sector_id = $2)
        )
        AND ($3::timestamptz IS NULL OR a.ends_at > $3)
        AND ($4::timestamptz IS NULL OR a.starts_at < $4)
        ORDER BY a.starts_at ASC
    `

	rows, err := r.db.QueryContext(ctx, query, filter.DepartmentID, filter.SectorID, filter.From, filter.To)

	utils.LogDBQuery(
		query,
		[]interface{}{filter.DepartmentID, filter.SectorID, filter.From, filter.To},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		activity := &models.Activity{}
		if err := rows.Scan(
			&activity.ID,
			&activity.SectorID,
			&activity.Title,
			&activity.Description,
			&activity.StartsAt,
			&activity.EndsAt,
			&activity.Visibility,
			&activity.CreatedBy,
			&activity.CreatedAt,
			&activity.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}

// Update updates an activity in the database
func (r *PostgresActivityRepository) Update(ctx context.Context, activity *models.Activity) error {
	startTime := time.Now()

	activity.UpdatedAt = time.Now()

	query := `
        UPDATE activities
        SET title = $1, description = $2, starts_at = $3, ends_at = $4, visibility = $5, updated_at = $6
        WHERE activity_id = $7
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		activity.Title,
		activity.Description,
		activity.StartsAt,
		activity.EndsAt,
		activity.Visibility,
		activity.UpdatedAt,
		activity.ID,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{activity.Title, activity.Description, activity.StartsAt, activity.EndsAt,
			activity.Visibility, activity.UpdatedAt, activity.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Activity", activity.ID)
	}

	log.Info().
		Int64("activity_id", activity.ID).
		Str("title", activity.Title).
		Msg("Activity updated")

	return nil
}

// Delete removes an activity from the database
func (r *PostgresActivityRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM activities WHERE activity_id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Activity", id)
	}

	log.Info().
		Int64("activity_id", id).
		Msg("Activity deleted")

	return nil
}
