package utils

// Error codes carried in the "error" field of error responses
const (
	ErrCodeValidation       = "validation_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeUnsupportedSport = "sport_not_supported"
	ErrCodeRateLimited      = "rate_limit_exceeded"
	ErrCodeConfiguration    = "configuration_error"
	ErrCodeInternal         = "internal_error"
	ErrCodeUpstreamFailure  = "upstream_failure"
)

// AppError is the structured error payload: a stable machine-readable
// code plus a human-readable message
type AppError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

func NewAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func (e *AppError) Error() string {
	return e.Message
}
