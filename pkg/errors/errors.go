package errors

import "net/http"

// HTTPError is a domain error annotated with the status code the delivery
// layer should answer with.
type HTTPError struct {
	StatusCode int
	Message    string
}

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(statusCode int, message string) HTTPError {
	return HTTPError{StatusCode: statusCode, Message: message}
}

func (e HTTPError) Error() string {
	return e.Message
}

// ErrInternalServerError is the fallback for unexpected failures.
var ErrInternalServerError = HTTPError{
	StatusCode: http.StatusInternalServerError,
	Message:    "internal server error",
}
