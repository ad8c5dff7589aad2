// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used when configuration
// does not specify them. Changes to these values may significantly impact
// application behavior and security.
package constants

// Default Pagination Values define the parameters used for paginated responses.
const (
	// DefaultPage is the default page number for paginated results when not specified.
	DefaultPage = 1

	// DefaultPageSize is the default number of items per page when not specified.
	DefaultPageSize = 20

	// MaxPageSize is the maximum allowable page size to prevent excessive resource usage.
	MaxPageSize = 100

	// MinPageSize is the minimum allowable page size.
	MinPageSize = 1
)

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default minimum number of database connections.
	DefaultDBMinConnections = 5

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Request Limits guard against excessive resource consumption.
const (
	// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
	MaxRequestBodySize = 1 << 20 // 1 MB
)

// Credential Parameters define the shape of credentials handled by the application.
const (
	// MinPasswordLength is the minimum accepted length for a permanent password.
	MinPasswordLength = 8

	// TempCredentialLength is the number of characters in an admin-minted
	// temporary credential.
	TempCredentialLength = 8

	// TempCredentialAlphabet is the symbol set temporary credentials are drawn from.
	TempCredentialAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// NationalIDLength is the number of digits in a normalized national identifier.
	NationalIDLength = 11

	// MaxEmailLength is the maximum accepted length for an email address.
	MaxEmailLength = 255

	// MaxDisplayNameLength is the maximum accepted length for a display name.
	MaxDisplayNameLength = 120

	// CredentialRequestsPerMinute caps login and reset-request attempts
	// per client IP.
	CredentialRequestsPerMinute = 10
)

// Context Key Names used when storing authenticated request data.
const (
	UserIDContextKey      = "user_id"
	DisplayNameContextKey = "display_name"
	EmailContextKey       = "email"
	RoleContextKey        = "role"
	RequestIDContextKey   = "request_id"
)

// Cookie Names used by the HTTP layer.
const (
	AuthTokenCookie = "auth_token"
	CSRFTokenCookie = "csrf_token"
)

// Token Types carried in JWT claims.
const (
	TokenTypeAccess = "access"
)

// User Roles recognized by the authorization layer.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// LogRedactedValue replaces sensitive values in query logs.
const LogRedactedValue = "[REDACTED]"
