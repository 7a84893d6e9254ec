package errors

const (
	HttpInternalError     = "internal_error"
	HttpInvalidQueryError = "invalid_query"
	HttpNotFoundError     = "not_found"
	HttpTimeoutError      = "timeout"
	HttpUnavailableError  = "unavailable"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
