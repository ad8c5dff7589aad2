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

// SectorRepository defines methods for interacting with sector data
type SectorRepository interface {
	Create(ctx context.Context, sector *models.Sector) error
	GetByID(ctx context.Context, id int64) (*models.Sector, error)
	List(ctx context.Context) ([]*models.Sector, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]*models.Sector, error)
	Update(ctx context.Context, sector *models.Sector) error
	Delete(ctx context.Context, id int64) error
}

// PostgresSectorRepository is a PostgreSQL implementation of SectorRepository
type PostgresSectorRepository struct {
	db *database.Pool
}

// NewSectorRepository creates a new SectorRepository
func NewSectorRepository(db *database.Pool) SectorRepository {
	return &PostgresSectorRepository{
		db: db,
	}
}

// Create adds a new sector to the database
func (r *PostgresSectorRepository) Create(ctx context.Context, sector *models.Sector) error {
	startTime := time.Now()

	now := time.Now()
	sector.CreatedAt = now
	sector.UpdatedAt = now

	query := `
        INSERT INTO sectors (department_id, name, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        RETURNING sector_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		sector.DepartmentID,
		sector.Name,
		sector.CreatedAt,
		sector.UpdatedAt,
	).Scan(&sector.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{sector.DepartmentID, sector.Name, sector.CreatedAt, sector.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return utils.NewDuplicateError("Sector", "name", sector.Name)
			}
			// 23503 when the department does not exist
			if pqErr.Code == "23503" {
				return utils.NewNotFoundError("Department", sector.DepartmentID)
			}
		}
		return fmt.Errorf("failed to create sector: %w", err)
	}

	log.Info().
		Int64("sector_id", sector.ID).
		Int64("department_id", sector.DepartmentID).
		Str("name", sector.Name).
		Msg("Sector created")

	return nil
}

// GetByID retrieves a sector by ID
func (r *PostgresSectorRepository) GetByID(ctx context.Context, id int64) (*models.Sector, error) {
	startTime := time.Now()

	query := `
        SELECT sector_id, department_id, name, created_at, updated_at
        FROM sectors
        WHERE sector_id = $1
    `

	sector := &models.Sector{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sector.ID,
		&sector.DepartmentID,
		&sector.Name,
		&sector.CreatedAt,
		&sector.UpdatedAt,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Sector", id)
		}
		return nil, fmt.Errorf("failed to get sector by ID: %w", err)
	}

	return sector, nil
}

// List retrieves all sectors ordered by name
func (r *PostgresSectorRepository) List(ctx context.Context) ([]*models.Sector, error) {
	return r.list(ctx, `
        SELECT sector_id, department_id, name, created_at, updated_at
        FROM sectors
        ORDER BY name ASC
    `)
}

// ListByDepartment retrieves the sectors of one department ordered by name
func (r *PostgresSectorRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]*models.Sector, error) {
	return r.list(ctx, `
        SELECT sector_id, department_id, name, created_at, updated_at
        FROM sectors
        WHERE department_id = $1
        ORDER BY name ASC
    `, departmentID)
}

func (r *PostgresSectorRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Sector, error) {
	startTime := time.Now()

	rows, err := r.db.QueryContext(ctx, query, args...)

	utils.LogDBQuery(
		query,
		args,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	defer rows.Close()

	var sectors []*models.Sector
	for rows.Next() {
		sector := &models.Sector{}
		if err := rows.Scan(
			&sector.ID,
			&sector.DepartmentID,
			&sector.Name,
			&sector.CreatedAt,
			&sector.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		sectors = append(sectors, sector)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sector rows: %w", err)
	}

	return sectors, nil
}

// Update updates a sector in the database
func (r *PostgresSectorRepository) Update(ctx context.Context, sector *models.Sector) error {
	startTime := time.Now()

	sector.UpdatedAt = time.Now()

	query := `
        UPDATE sectors
        SET name = $1, updated_at = $2
        WHERE sector_id = $3
    `

	result, err := r.db.ExecContext(ctx, query, sector.Name, sector.UpdatedAt, sector.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{sector.Name, sector.UpdatedAt, sector.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.NewDuplicateError("Sector", "name", sector.Name)
		}
		return fmt.Errorf("failed to update sector: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Sector", sector.ID)
	}

	log.Info().
		Int64("sector_id", sector.ID).
		Str("name", sector.Name).
		Msg("Sector updated")

	return nil
}

// Delete removes a sector from the database
func (r *PostgresSectorRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM sectors WHERE sector_id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		// 23503 when staff or activities still reference the sector
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return utils.NewConflictError("sector still has staff or activities attached")
		}
		return fmt.Errorf("failed to delete sector: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Sector", id)
	}

	log.Info().
		Int64("sector_id", id).
		Msg("Sector deleted")

	return nil
}
