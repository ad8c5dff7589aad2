package models

import (
	"time"
)

// Sector represents a unit within a department. Staff and activities are
// attached at sector granularity.
type Sector struct {
	ID           int64     `json:"id" db:"sector_id"`
	DepartmentID int64     `json:"department_id" db:"department_id"`
	Name         string    `json:"name" db:"name" validate:"required,min=2,max=100"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the database table name for the Sector model.
func (s *Sector) TableName() string {
	return "sectors"
}

// CreateSectorRequest represents the data required to create a sector.
type CreateSectorRequest struct {
	DepartmentID int64  `json:"department_id" validate:"required"`
	Name         string `json:"name" validate:"required,min=2,max=100"`
}

// UpdateSectorRequest represents the mutable attributes of a sector.
type UpdateSectorRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}
