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

// DepartmentRepository defines methods for interacting with department data
type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	List(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// PostgresDepartmentRepository is a PostgreSQL implementation of DepartmentRepository
type PostgresDepartmentRepository struct {
	db *database.Pool
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *database.Pool) DepartmentRepository {
	return &PostgresDepartmentRepository{
		db: db,
	}
}

// Create adds a new department to the database
func (r *PostgresDepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	startTime := time.Now()

	now := time.Now()
	department.CreatedAt = now
	department.UpdatedAt = now

	query := `
        INSERT INTO departments (name, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
        RETURNING department_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		department.Name,
		department.Description,
		department.CreatedAt,
		department.UpdatedAt,
	).Scan(&department.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{department.Name, department.Description, department.CreatedAt, department.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.NewDuplicateError("Department", "name", department.Name)
		}
		return fmt.Errorf("failed to create department: %w", err)
	}

	log.Info().
		Int64("department_id", department.ID).
		Str("name", department.Name).
		Msg("Department created")

	return nil
}

// GetByID retrieves a department by ID
func (r *PostgresDepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	startTime := time.Now()

	query := `
        SELECT department_id, name, description, created_at, updated_at
        FROM departments
        WHERE department_id = $1
    `

	department := &models.Department{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.Description,
		&department.CreatedAt,
		&department.UpdatedAt,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Department", id)
		}
		return nil, fmt.Errorf("failed to get department by ID: %w", err)
	}

	return department, nil
}

// List retrieves all departments ordered by name
func (r *PostgresDepartmentRepository) List(ctx context.Context) ([]*models.Department, error) {
	startTime := time.Now()

	query := `
        SELECT department_id, name, description, created_at, updated_at
        FROM departments
        ORDER BY name ASC
    `

	rows, err := r.db.QueryContext(ctx, query)

	utils.LogDBQuery(
		query,
		nil,
		time.Since(startTime),
		err,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		department := &models.Department{}
		if err := rows.Scan(
			&department.ID,
			&department.Name,
			&department.Description,
			&department.CreatedAt,
			&department.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating department rows: %w", err)
	}

	return departments, nil
}

// Update updates a department in the database
func (r *PostgresDepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	startTime := time.Now()

	department.UpdatedAt = time.Now()

	query := `
        UPDATE departments
        SET name = $1, description = $2, updated_at = $3
        WHERE department_id = $4
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		department.Name,
		department.Description,
		department.UpdatedAt,
		department.ID,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{department.Name, department.Description, department.UpdatedAt, department.ID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.NewDuplicateError("Department", "name", department.Name)
		}
		return fmt.Errorf("failed to update department: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Department", department.ID)
	}

	log.Info().
		Int64("department_id", department.ID).
		Str("name", department.Name).
		Msg("Department updated")

	return nil
}

// Delete removes a department from the database
func (r *PostgresDepartmentRepository) Delete(ctx context.Context, id int64) error {
	startTime := time.Now()

	query := "DELETE FROM departments WHERE department_id = $1"
	result, err := r.db.ExecContext(ctx, query, id)

	utils.LogDBQuery(
		query,
		[]interface{}{id},
		time.Since(startTime),
		err,
	)

	if err != nil {
		// 23503 when sectors still reference the department
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return utils.NewConflictError("department still has sectors attached")
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return utils.NewNotFoundError("Department", id)
	}

	log.Info().
		Int64("department_id", id).
		Msg("Department deleted")

	return nil
}
