package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise/Shiftwise_Backend/internal/database"
	"github.com/shiftwise/Shiftwise_Backend/internal/models"
	"github.com/shiftwise/Shiftwise_Backend/internal/repository"
	"github.com/shiftwise/Shiftwise_Backend/internal/utils"
)

// setupDepartmentRepositoryTest creates a new test database connection and mock
func setupDepartmentRepositoryTest(t *testing.T) (*repository.PostgresDepartmentRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dbPool := &database.Pool{DB: db}
	repo := repository.NewDepartmentRepository(dbPool).(*repository.PostgresDepartmentRepository)

	return repo, mock, func() {
		db.Close()
	}
}

func TestDepartmentRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupDepartmentRepositoryTest(t)
	defer cleanup()

	description := "Clinical operations"
	department := &models.Department{
		Name:        "Operations",
		Description: &description,
	}

	mock.ExpectQuery("INSERT INTO departments").
		WithArgs(department.Name, department.Description, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"department_id"}).AddRow(1))

	err := repo.Create(context.Background(), department)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), department.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_Create_DuplicateName(t *testing.T) {
	repo, mock, cleanup := setupDepartmentRepositoryTest(t)
	defer cleanup()

	department := &models.Department{Name: "Operations"}

	mock.ExpectQuery("INSERT INTO departments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_departments_name"})

	err := repo.Create(context.Background(), department)

	assert.Error(t, err)
	assert.True(t, utils.IsDuplicateError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupDepartmentRepositoryTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM departments").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)

	assert.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_List(t *testing.T) {
	repo, mock, cleanup := setupDepartmentRepositoryTest(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"department_id", "name", "description", "created_at", "updated_at"}).
		AddRow(1, "Logistics", nil, now, now).
		AddRow(2, "Operations", "Clinical operations", now, now)

	mock.ExpectQuery("SELECT (.+) FROM departments").
		WillReturnRows(rows)

	departments, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, departments, 2)
	assert.Equal(t, "Logistics", departments[0].Name)
	assert.Nil(t, departments[0].Description)
	require.NotNil(t, departments[1].Description)
	assert.Equal(t, "Clinical operations", *departments[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepository_Delete_NotFound(t *testing.T) {
	repo, mock, cleanup := setupDepartmentRepositoryTest(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM departments").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)

	assert.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
