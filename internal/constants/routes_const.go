// Package constants provides shared constant values used throughout the application.
//
// The routes_const.go file defines URL path and parameter names so that route
// definitions and parameter extraction stay consistent across the API.
package constants

// Base Routes establish the URL hierarchy of the API.
const (
	// APIBasePath is the root path prefix for all API endpoints.
	APIBasePath = "/api"

	// HealthPath is the endpoint for health checks and system status.
	HealthPath = "/health"
)

// URL Parameters used in route definitions.
const (
	// ParamUserID is the URL parameter for user identifiers.
	ParamUserID = "userID"

	// ParamRequestID is the URL parameter for reset request identifiers.
	ParamRequestID = "requestID"

	// ParamDepartmentID is the URL parameter for department identifiers.
	ParamDepartmentID = "departmentID"

	// ParamSectorID is the URL parameter for sector identifiers.
	ParamSectorID = "sectorID"

	// ParamActivityID is the URL parameter for activity identifiers.
	ParamActivityID = "activityID"
)

// Query Parameters used in query strings.
const (
	// QueryParamPage is the query parameter for pagination page number.
	QueryParamPage = "page"

	// QueryParamPageSize is the query parameter for pagination page size.
	QueryParamPageSize = "page_size"

	// QueryParamFrom is the query parameter for the start of a date range filter.
	QueryParamFrom = "from"

	// QueryParamTo is the query parameter for the end of a date range filter.
	QueryParamTo = "to"

	// QueryParamDepartmentID scopes a sector listing to one department.
	QueryParamDepartmentID = "department_id"
)
