package scripts

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/shiftwise/Shiftwise_Backend/internal/config"
	"github.com/shiftwise/Shiftwise_Backend/internal/database"
)

// createMockDB creates a mock database for testing
func createMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// createMockDBAndTx creates a mock database and transaction for testing
func createMockDBAndTx(t *testing.T) (*sql.DB, *sql.Tx, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	mock.ExpectBegin()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	cleanup := func() {
		tx.Rollback()
		db.Close()
	}

	return db, tx, mock, cleanup
}

// testConfig returns a configuration with hashing settings light enough for tests
func testConfig() *config.AppConfig {
	return &config.AppConfig{
		PasswordHash: config.HashSettings{
			Memory:      16 * 1024,
			Iterations:  1,
			Parallelism: 1,
			SaltLength:  16,
			KeyLength:   32,
		},
	}
}

func TestNewSeeder(t *testing.T) {
	db, _, cleanup := createMockDB(t)
	defer cleanup()

	pool := &database.Pool{DB: db}
	seeder := NewSeeder(pool, testConfig())

	assert.NotNil(t, seeder)
	assert.Equal(t, pool, seeder.db)
}

func TestCreateSeedsTable(t *testing.T) {
	db, mock, cleanup := createMockDB(t)
	defer cleanup()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS seeds").
		WillReturnResult(sqlmock.NewResult(0, 0))

	pool := &database.Pool{DB: db}
	seeder := NewSeeder(pool, testConfig())

	ctx := context.Background()
	err := seeder.createSeedsTable(ctx)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutedSeeds(t *testing.T) {
	db, mock, cleanup := createMockDB(t)
	defer cleanup()

	ctx := context.Background()

	mock.ExpectQuery("SELECT name FROM seeds").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).
			AddRow("default_department").
			AddRow("admin_user"))

	pool := &database.Pool{DB: db}
	seeder := NewSeeder(pool, testConfig())

	seeds, err := seeder.getExecutedSeeds(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, seeds)
	assert.True(t, seeds["default_department"])
	assert.True(t, seeds["admin_user"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDefaultDepartment(t *testing.T) {
	t.Run("Creates department and sector when none exist", func(t *testing.T) {
		db, tx, mock, cleanup := createMockDBAndTx(t)
		defer cleanup()

		mock.ExpectQuery("SELECT COUNT(.+) FROM departments").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO departments").
			WillReturnRows(sqlmock.NewRows([]string{"department_id"}).AddRow(int64(1)))
		mock.ExpectExec("INSERT INTO sectors").
			WithArgs(int64(1), defaultSectorName).
			WillReturnResult(sqlmock.NewResult(1, 1))

		pool := &database.Pool{DB: db}
		seeder := NewSeeder(pool, testConfig())

		err := seeder.seedDefaultDepartment(context.Background(), tx)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Skips when departments already exist", func(t *testing.T) {
		db, tx, mock, cleanup := createMockDBAndTx(t)
		defer cleanup()

		mock.ExpectQuery("SELECT COUNT(.+) FROM departments").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		pool := &database.Pool{DB: db}
		seeder := NewSeeder(pool, testConfig())

		err := seeder.seedDefaultDepartment(context.Background(), tx)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSeedAdminUser(t *testing.T) {
	t.Run("Creates admin when none exists", func(t *testing.T) {
		db, tx, mock, cleanup := createMockDBAndTx(t)
		defer cleanup()

		mock.ExpectQuery("SELECT COUNT(.+) FROM users").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("INSERT INTO users").
			WillReturnResult(sqlmock.NewResult(1, 1))

		pool := &database.Pool{DB: db}
		seeder := NewSeeder(pool, testConfig())

		err := seeder.seedAdminUser(context.Background(), tx)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Skips when an admin already exists", func(t *testing.T) {
		db, tx, mock, cleanup := createMockDBAndTx(t)
		defer cleanup()

		mock.ExpectQuery("SELECT COUNT(.+) FROM users").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		pool := &database.Pool{DB: db}
		seeder := NewSeeder(pool, testConfig())

		err := seeder.seedAdminUser(context.Background(), tx)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRunSeedRecordsExecution(t *testing.T) {
	db, mock, cleanup := createMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO seeds").
		WithArgs("noop_seed").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	pool := &database.Pool{DB: db}
	seeder := NewSeeder(pool, testConfig())

	err := seeder.runSeed(context.Background(), "noop_seed", func(ctx context.Context, tx *sql.Tx) error {
		return nil
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
