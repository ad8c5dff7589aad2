package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts
const (
	DBConnectionTimeout   = 30 * time.Second
	DBHealthCheckTimeout  = 5 * time.Second
	DBConnMaxLifetime     = 1 * time.Hour
	DBConnMaxIdleTime     = 30 * time.Minute
	DBMaintenanceInterval = 6 * time.Hour
)

// Credential Lifetimes
const (
	// DefaultJWTExpiry is the session token validity window.
	DefaultJWTExpiry = 8 * time.Hour

	// DefaultTempCredentialExpiry is how long an approved temporary
	// credential stays usable.
	DefaultTempCredentialExpiry = 24 * time.Hour

	// ResetRequestRetention is how long consumed, superseded, and expired
	// reset requests are kept before the maintenance task purges them.
	ResetRequestRetention = 30 * 24 * time.Hour
)
