package models

import (
	"time"
)

// Department represents a top-level organizational unit. Sectors nest under
// departments; staff belong to sectors.
type Department struct {
	ID          int64     `json:"id" db:"department_id"`
	Name        string    `json:"name" db:"name" validate:"required,min=2,max=100"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the database table name for the Department model.
func (d *Department) TableName() string {
	return "departments"
}

// CreateDepartmentRequest represents the data required to create a department.
type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// UpdateDepartmentRequest represents the mutable attributes of a department.
type UpdateDepartmentRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}
