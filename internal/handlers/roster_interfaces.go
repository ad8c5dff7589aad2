package handlers

import (
	"context"
	"time"

	"github.com/shiftwise/Shiftwise_Backend/internal/models"
)

// DepartmentServiceInterface defines the methods required from the
// organizational-structure service.
type DepartmentServiceInterface interface {
	CreateDepartment(ctx context.Context, req *models.CreateDepartmentRequest) (*models.Department, error)
	GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error)
	ListDepartments(ctx context.Context) ([]*models.Department, error)
	UpdateDepartment(ctx context.Context, id int64, req *models.UpdateDepartmentRequest) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error

	CreateSector(ctx context.Context, req *models.CreateSectorRequest) (*models.Sector, error)
	GetSectorByID(ctx context.Context, id int64) (*models.Sector, error)
	ListSectors(ctx context.Context, departmentID *int64) ([]*models.Sector, error)
	UpdateSector(ctx context.Context, id int64, req *models.UpdateSectorRequest) (*models.Sector, error)
	DeleteSector(ctx context.Context, id int64) error
}

// ActivityServiceInterface defines the methods required from the activity
// scheduling service.
type ActivityServiceInterface interface {
	CreateActivity(ctx context.Context, createdBy int64, req *models.CreateActivityRequest) (*models.Activity, error)
	GetActivityByID(ctx context.Context, id int64) (*models.Activity, error)
	ListVisibleForUser(ctx context.Context, userID int64, from, to *time.Time) ([]*models.Activity, error)
	UpdateActivity(ctx context.Context, id int64, req *models.UpdateActivityRequest) (*models.Activity, error)
	DeleteActivity(ctx context.Context, id int64) error
}
