package apperrors

// ErrorCode identifies an error class in API responses.
type ErrorCode string

const (
	// System errors
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Generic business errors
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidOperation ErrorCode = "INVALID_OPERATION"

	// Domain-specific errors
	CodeStorageFailure   ErrorCode = "STORAGE_FAILURE"
	CodeGatewayError     ErrorCode = "GATEWAY_ERROR"
	CodeCallbackMismatch ErrorCode = "CALLBACK_MISMATCH"
)
