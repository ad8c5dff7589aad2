package service

import (
	"context"

	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/repository"
)

// DepartmentService handles the organizational structure: departments and
// the sectors nested under them.
type DepartmentService struct {
	departmentRepo repository.DepartmentRepository
	sectorRepo     repository.SectorRepository
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(
	departmentRepo repository.DepartmentRepository,
	sectorRepo repository.SectorRepository,
) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		sectorRepo:     sectorRepo,
	}
}

// CreateDepartment adds a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, req *models.CreateDepartmentRequest) (*models.Department, error) {
	department := &models.Department{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	return department, nil
}

// GetDepartmentByID retrieves a department
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// ListDepartments returns all departments ordered by name
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	return s.departmentRepo.List(ctx)
}

// UpdateDepartment applies the supplied attributes to a department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id int64, req *models.UpdateDepartmentRequest) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		department.Name = req.Name
	}
	if req.Description != nil {
		department.Description = req.Description
	}

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}

	return department, nil
}

// DeleteDepartment removes a department. Fails while sectors still
// reference it.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.departmentRepo.Delete(ctx, id)
}

// CreateSector adds a sector under a department
func (s *DepartmentService) CreateSector(ctx context.Context, req *models.CreateSectorRequest) (*models.Sector, error) {
	sector := &models.Sector{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
	}

	if err := s.sectorRepo.Create(ctx, sector); err != nil {
		return nil, err
	}

	return sector, nil
}

// GetSectorByID retrieves a sector
func (s *DepartmentService) GetSectorByID(ctx context.Context, id int64) (*models.Sector, error) {
	return s.sectorRepo.GetByID(ctx, id)
}

// ListSectors returns all sectors, or only those under the given department
// when departmentID is non-nil.
func (s *DepartmentService) ListSectors(ctx context.Context, departmentID *int64) ([]*models.Sector, error) {
	if departmentID != nil {
		return s.sectorRepo.ListByDepartment(ctx, *departmentID)
	}
	return s.sectorRepo.List(ctx)
}

// UpdateSector renames a sector
func (s *DepartmentService) UpdateSector(ctx context.Context, id int64, req *models.UpdateSectorRequest) (*models.Sector, error) {
	sector, err := s.sectorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sector.Name = req.Name

	if err := s.sectorRepo.Update(ctx, sector); err != nil {
		return nil, err
	}

	return sector, nil
}

// DeleteSector removes a sector. Fails while staff or activities still
// reference it.
func (s *DepartmentService) DeleteSector(ctx context.Context, id int64) error {
	return s.sectorRepo.Delete(ctx, id)
}
