package appErrors

// Error codes grouped by domain
const (
	// Auth
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeSessionExpired     ErrorCode = "SESSION_EXPIRED"
	CodeTooManyRequests    ErrorCode = "TOO_MANY_REQUESTS"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserType  ErrorCode = "INVALID_USER_TYPE"
	CodeUnknownRole      ErrorCode = "UNKNOWN_ROLE"

	// Resources
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeProfileNotFound      ErrorCode = "PROFILE_NOT_FOUND"
	CodeEventNotFound        ErrorCode = "EVENT_NOT_FOUND"
	CodeSubscriptionNotFound ErrorCode = "SUBSCRIPTION_NOT_FOUND"

	// Business rules and races
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeEventNotActive     ErrorCode = "EVENT_NOT_ACTIVE"
	CodeAlreadyApplied     ErrorCode = "ALREADY_APPLIED"
	CodeAlreadyCheckedIn   ErrorCode = "ALREADY_CHECKED_IN"
	CodeNotCheckedIn       ErrorCode = "NOT_CHECKED_IN"
	CodeAlreadyCheckedOut  ErrorCode = "ALREADY_CHECKED_OUT"
	CodeUpgradeRequired    ErrorCode = "UPGRADE_REQUIRED"
	CodeWrongUserType      ErrorCode = "WRONG_USER_TYPE"

	// System
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
