package taskflowsdk

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a failed envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("taskflow: %d %s (%s)", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("taskflow: %d %s", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status of an APIError, or 0 for other errors.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool { return StatusCode(err) == http.StatusUnauthorized }
func IsForbidden(err error) bool    { return StatusCode(err) == http.StatusForbidden }
func IsNotFound(err error) bool     { return StatusCode(err) == http.StatusNotFound }
func IsConflict(err error) bool     { return StatusCode(err) == http.StatusConflict }
