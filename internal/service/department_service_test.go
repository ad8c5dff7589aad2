package service

import (
	"context"
	"testing"
	"time"

	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

type MockDepartmentRepository struct {
	departments map[int64]*models.Department
	nextID      int64
}

func NewMockDepartmentRepository() *MockDepartmentRepository {
	return &MockDepartmentRepository{
		departments: make(map[int64]*models.Department),
		nextID:      1,
	}
}

func (m *MockDepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	for _, existing := range m.departments {
		if existing.Name == department.Name {
			return utils.NewDuplicateError("Department", "name", department.Name)
		}
	}

	department.ID = m.nextID
	m.nextID++
	department.CreatedAt = time.Now()
	department.UpdatedAt = department.CreatedAt
	m.departments[department.ID] = department

	return nil
}

func (m *MockDepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	department, ok := m.departments[id]
	if !ok {
		return nil, utils.NewNotFoundError("Department", id)
	}
	return department, nil
}

func (m *MockDepartmentRepository) List(ctx context.Context) ([]*models.Department, error) {
	var departments []*models.Department
	for _, department := range m.departments {
		departments = append(departments, department)
	}
	return departments, nil
}

func (m *MockDepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	if _, ok := m.departments[department.ID]; !ok {
		return utils.NewNotFoundError("Department", department.ID)
	}
	m.departments[department.ID] = department
	return nil
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.departments[id]; !ok {
		return utils.NewNotFoundError("Department", id)
	}
	delete(m.departments, id)
	return nil
}

type MockSectorRepository struct {
	sectors map[int64]*models.Sector
	nextID  int64
}

func NewMockSectorRepository() *MockSectorRepository {
	return &MockSectorRepository{
		sectors: make(map[int64]*models.Sector),
		nextID:  1,
	}
}

func (m *MockSectorRepository) Create(ctx context.Context, sector *models.Sector) error {
	sector.ID = m.nextID
	m.nextID++
	sector.CreatedAt = time.Now()
	sector.UpdatedAt = sector.CreatedAt
	m.sectors[sector.ID] = sector
	return nil
}

func (m *MockSectorRepository) GetByID(ctx context.Context, id int64) (*models.Sector, error) {
	sector, ok := m.sectors[id]
	if !ok {
		return nil, utils.NewNotFoundError("Sector", id)
	}
	return sector, nil
}

func (m *MockSectorRepository) List(ctx context.Context) ([]*models.Sector, error) {
	var sectors []*models.Sector
	for _, sector := range m.sectors {
		sectors = append(sectors, sector)
	}
	return sectors, nil
}

func (m *MockSectorRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]*models.Sector, error) {
	var sectors []*models.Sector
	for _, sector := range m.sectors {
		if sector.DepartmentID == departmentID {
			sectors = append(sectors, sector)
		}
	}
	return sectors, nil
}

func (m *MockSectorRepository) Update(ctx context.Context, sector *models.Sector) error {
	if _, ok := m.sectors[sector.ID]; !ok {
		return utils.NewNotFoundError("Sector", sector.ID)
	}
	m.sectors[sector.ID] = sector
	return nil
}

func (m *MockSectorRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.sectors[id]; !ok {
		return utils.NewNotFoundError("Sector", id)
	}
	delete(m.sectors, id)
	return nil
}

func newTestDepartmentService() (*DepartmentService, *MockDepartmentRepository, *MockSectorRepository) {
	departmentRepo := NewMockDepartmentRepository()
	sectorRepo := NewMockSectorRepository()
	return NewDepartmentService(departmentRepo, sectorRepo), departmentRepo, sectorRepo
}

func TestDepartmentService_CreateDepartment(t *testing.T) {
	service, _, _ := newTestDepartmentService()

	department, err := service.CreateDepartment(context.Background(), &models.CreateDepartmentRequest{
		Name: "Operations",
	})

	if err != nil {
		t.Fatalf("CreateDepartment() error = %v", err)
	}
	if department.ID == 0 {
		t.Error("Expected department ID to be assigned")
	}

	_, err = service.CreateDepartment(context.Background(), &models.CreateDepartmentRequest{
		Name: "Operations",
	})
	if !utils.IsDuplicateError(err) {
		t.Errorf("Expected duplicate error, got %v", err)
	}
}

func TestDepartmentService_UpdateDepartment(t *testing.T) {
	service, _, _ := newTestDepartmentService()

	department, err := service.CreateDepartment(context.Background(), &models.CreateDepartmentRequest{Name: "Operations"})
	if err != nil {
		t.Fatalf("CreateDepartment() error = %v", err)
	}

	description := "Clinical operations"
	updated, err := service.UpdateDepartment(context.Background(), department.ID, &models.UpdateDepartmentRequest{
		Description: &description,
	})

	if err != nil {
		t.Fatalf("UpdateDepartment() error = %v", err)
	}
	if updated.Name != "Operations" {
		t.Errorf("Expected name to be preserved, got %q", updated.Name)
	}
	if updated.Description == nil || *updated.Description != description {
		t.Errorf("Expected description %q, got %v", description, updated.Description)
	}
}

func TestDepartmentService_Sectors(t *testing.T) {
	service, _, _ := newTestDepartmentService()

	department, err := service.CreateDepartment(context.Background(), &models.CreateDepartmentRequest{Name: "Operations"})
	if err != nil {
		t.Fatalf("CreateDepartment() error = %v", err)
	}

	sector, err := service.CreateSector(context.Background(), &models.CreateSectorRequest{
		DepartmentID: department.ID,
		Name:         "Emergency",
	})
	if err != nil {
		t.Fatalf("CreateSector() error = %v", err)
	}

	sectors, err := service.ListSectors(context.Background(), &department.ID)
	if err != nil {
		t.Fatalf("ListSectors() error = %v", err)
	}
	if len(sectors) != 1 || sectors[0].ID != sector.ID {
		t.Errorf("Expected the created sector, got %v", sectors)
	}

	renamed, err := service.UpdateSector(context.Background(), sector.ID, &models.UpdateSectorRequest{Name: "Acute"})
	if err != nil {
		t.Fatalf("UpdateSector() error = %v", err)
	}
	if renamed.Name != "Acute" {
		t.Errorf("Expected renamed sector, got %q", renamed.Name)
	}

	if err := service.DeleteSector(context.Background(), sector.ID); err != nil {
		t.Fatalf("DeleteSector() error = %v", err)
	}
	if _, err := service.GetSectorByID(context.Background(), sector.ID); !utils.IsNotFoundError(err) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
}
