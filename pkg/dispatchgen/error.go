package dispatchgen

import (
	"fmt"
	"net/http"
)

// HTTPError is an error with the status code and body a handler responds with
type HTTPError struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Internal error       `json:"-"`
}

// Error makes HTTPError implement the error interface
func (he *HTTPError) Error() string {
	if he.Internal != nil {
		return fmt.Sprintf("HTTP %d: %s: %v", he.Code, he.Message, he.Internal)
	}
	return fmt.Sprintf("HTTP %d: %s", he.Code, he.Message)
}

// Unwrap returns the internal error
func (he *HTTPError) Unwrap() error {
	return he.Internal
}

// ErrBodyTooLarge is returned by RequestContext.Body when the body exceeds its limit
var ErrBodyTooLarge = NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")

// NewHTTPError creates a new HTTPError with the status text as message
func NewHTTPError(code int, message ...string) *HTTPError {
	he := &HTTPError{Code: code, Message: http.StatusText(code)}
	if len(message) > 0 {
		he.Message = message[0]
	}
	return he
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// ErrUnprocessableEntityWithDetails creates a 422 Unprocessable Entity error with details
func ErrUnprocessableEntityWithDetails(message string, details interface{}, internal error) *HTTPError {
	he := NewHTTPError(http.StatusUnprocessableEntity, message)
	he.Details = details
	he.Internal = internal
	return he
}

// ErrUnsupportedMediaType creates a 415 Unsupported Media Type error
func ErrUnsupportedMediaType(contentType string) *HTTPError {
	return NewHTTPError(http.StatusUnsupportedMediaType, fmt.Sprintf("unsupported content type '%s'", contentType))
}

// StatusOf returns the status an error responds with; errors that are not an
// *HTTPError respond with 500
func StatusOf(err error) (int, interface{}) {
	if he, ok := err.(*HTTPError); ok {
		return he.Code, he
	}
	return http.StatusInternalServerError, NewHTTPError(http.StatusInternalServerError, err.Error())
}
