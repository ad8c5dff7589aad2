package migrations

import (
	"context"
	"database/sql"
)

// createDepartmentsTable creates the departments table
func createDepartmentsTable() Migration {
	return Migration{
		Name:        "create_departments_table",
		Description: "Creates the departments table",
		TableName:   "departments",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS departments (
					department_id BIGSERIAL PRIMARY KEY,
					name VARCHAR(100) NOT NULL,
					description TEXT,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT uq_departments_name UNIQUE (name)
				)
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createSectorsTable creates the sectors table
func createSectorsTable() Migration {
	return Migration{
		Name:        "create_sectors_table",
		Description: "Creates the sectors table",
		TableName:   "sectors",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS sectors (
					sector_id BIGSERIAL PRIMARY KEY,
					department_id BIGINT NOT NULL,
					name VARCHAR(100) NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_sectors_department FOREIGN KEY (department_id) REFERENCES departments(department_id),
					CONSTRAINT uq_sectors_department_name UNIQUE (department_id, name)
				);
				CREATE INDEX IF NOT EXISTS idx_sectors_department_id ON sectors(department_id);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createUsersTable creates the users table
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   "users",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS users (
					user_id BIGSERIAL PRIMARY KEY,
					national_id VARCHAR(11) NOT NULL,
					email VARCHAR(255) NOT NULL,
					display_name VARCHAR(100) NOT NULL,
					password_hash VARCHAR(255) NOT NULL,
					salt VARCHAR(255) NOT NULL,
					role VARCHAR(20) NOT NULL DEFAULT 'staff',
					sector_id BIGINT,
					position VARCHAR(100),
					account_status VARCHAR(20) NOT NULL DEFAULT 'pending',
					requires_password_change BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT uq_users_national_id UNIQUE (national_id),
					CONSTRAINT uq_users_email UNIQUE (email),
					CONSTRAINT fk_users_sector FOREIGN KEY (sector_id) REFERENCES sectors(sector_id)
				);
				CREATE INDEX IF NOT EXISTS idx_users_sector_id ON users(sector_id);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createActivitiesTable creates the activities table
func createActivitiesTable() Migration {
	return Migration{
		Name:        "create_activities_table",
		Description: "Creates the activities table",
		TableName:   "activities",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS activities (
					activity_id BIGSERIAL PRIMARY KEY,
					sector_id BIGINT NOT NULL,
					title VARCHAR(200) NOT NULL,
					description TEXT,
					starts_at TIMESTAMP NOT NULL,
					ends_at TIMESTAMP NOT NULL,
					visibility VARCHAR(20) NOT NULL DEFAULT 'sector',
					created_by BIGINT NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_activities_sector FOREIGN KEY (sector_id) REFERENCES sectors(sector_id),
					CONSTRAINT fk_activities_created_by FOREIGN KEY (created_by) REFERENCES users(user_id),
					CONSTRAINT ck_activities_window CHECK (ends_at > starts_at)
				);
				CREATE INDEX IF NOT EXISTS idx_activities_sector_id ON activities(sector_id);
				CREATE INDEX IF NOT EXISTS idx_activities_starts_at ON activities(starts_at);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createResetRequestsTable creates the reset_requests table.
// The partial unique index allows at most one live request per user while
// keeping consumed and discarded rows around for auditing.
func createResetRequestsTable() Migration {
	return Migration{
		Name:        "create_reset_requests_table",
		Description: "Creates the reset_requests table",
		TableName:   "reset_requests",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS reset_requests (
					request_id BIGSERIAL PRIMARY KEY,
					user_id BIGINT NOT NULL,
					temp_credential_hash VARCHAR(255),
					temp_credential_salt VARCHAR(255),
					expires_at TIMESTAMP,
					approved_by BIGINT,
					approved_at TIMESTAMP,
					used BOOLEAN NOT NULL DEFAULT FALSE,
					used_at TIMESTAMP,
					deleted BOOLEAN NOT NULL DEFAULT FALSE,
					deleted_at TIMESTAMP,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_reset_requests_user FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE,
					CONSTRAINT fk_reset_requests_approver FOREIGN KEY (approved_by) REFERENCES users(user_id)
				);
				CREATE UNIQUE INDEX IF NOT EXISTS uq_reset_requests_live_user
					ON reset_requests(user_id)
					WHERE NOT deleted AND (approved_at IS NULL OR NOT used);
				CREATE INDEX IF NOT EXISTS idx_reset_requests_created_at ON reset_requests(created_at);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}
