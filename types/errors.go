package types

const (
	ErrInvalidInput        = "Invalid input"
	ErrInvalidEmployeeID   = "Invalid employee ID"
	ErrInvalidDeductions   = "Deductions must be a non-negative number"
	ErrDatabaseError       = "Database error"
	ErrEmployeeNotFound    = "Employee not found"
	ErrPositionNotFound    = "Position not found"
	ErrUpstreamUnavailable = "Upstream service unavailable"
	ErrInternalError       = "internal server error"
)

// Machine-readable codes carried in APIResponse.Code.
const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeNotFound            = "NOT_FOUND"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeStoreFailure        = "STORE_FAILURE"
)
