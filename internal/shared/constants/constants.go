package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"

	// HeaderXUserID carries the caller's user SID, set by the upstream gateway.
	HeaderXUserID = "X-User-ID"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserSID   = "user_sid"
	ContextKeyRequestID = "request_id"

	// Database table names
	TablePackages  = "packages"
	TablePurchases = "purchases"
	TableUsers     = "users"

	// Proof of payment
	ProofFormField     = "transition"
	ProofSubdirectory  = "transitions"
	UploadsRoutePrefix = "/uploads"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgPackageNotFound     = "Package not found"
	ErrMsgUserNotFound        = "User not found"
	ErrMsgPackageHasPending   = "Cannot delete package with pending purchases"
	ErrMsgSomethingWentWrong  = "Something went wrong"
)
