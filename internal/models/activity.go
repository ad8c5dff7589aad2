package models

import (
	"time"
)

// ActivityVisibility controls which staff can see a scheduled activity.
type ActivityVisibility string

const (
	// VisibilitySector limits the activity to staff in its own sector.
	VisibilitySector ActivityVisibility = "sector"

	// VisibilityDepartment widens it to every sector in the department.
	VisibilityDepartment ActivityVisibility = "department"

	// VisibilityCompany makes the activity visible to everyone.
	VisibilityCompany ActivityVisibility = "company"
)

// IsValid reports whether the visibility is one of the known levels.
func (v ActivityVisibility) IsValid() bool {
	switch v {
	case VisibilitySector, VisibilityDepartment, VisibilityCompany:
		return true
	}
	return false
}

// Activity represents a scheduled roster entry within a sector.
type Activity struct {
	ID          int64              `json:"id" db:"activity_id"`
	SectorID    int64              `json:"sector_id" db:"sector_id"`
	Title       string             `json:"title" db:"title" validate:"required,min=2,max=200"`
	Description *string            `json:"description,omitempty" db:"description"`
	StartsAt    time.Time          `json:"starts_at" db:"starts_at"`
	EndsAt      time.Time          `json:"ends_at" db:"ends_at"`
	Visibility  ActivityVisibility `json:"visibility" db:"visibility"`
	CreatedBy   int64              `json:"created_by" db:"created_by"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`
}

// TableName returns the database table name for the Activity model.
func (a *Activity) TableName() string {
	return "activities"
}

// Overlaps reports whether two activities occupy intersecting time windows.
func (a *Activity) Overlaps(other *Activity) bool {
	return a.StartsAt.Before(other.EndsAt) && other.StartsAt.Before(a.EndsAt)
}

// CreateActivityRequest represents the data required to schedule an activity.
type CreateActivityRequest struct {
	SectorID    int64              `json:"sector_id" validate:"required"`
	Title       string             `json:"title" validate:"required,min=2,max=200"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=1000"`
	StartsAt    time.Time          `json:"starts_at" validate:"required"`
	EndsAt      time.Time          `json:"ends_at" validate:"required,gtfield=StartsAt"`
	Visibility  ActivityVisibility `json:"visibility" validate:"required,oneof=sector department company"`
}

// UpdateActivityRequest represents the mutable attributes of an activity.
type UpdateActivityRequest struct {
	Title       string              `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string             `json:"description,omitempty" validate:"omitempty,max=1000"`
	StartsAt    *time.Time          `json:"starts_at,omitempty"`
	EndsAt      *time.Time          `json:"ends_at,omitempty"`
	Visibility  *ActivityVisibility `json:"visibility,omitempty" validate:"omitempty,oneof=sector department company"`
}
