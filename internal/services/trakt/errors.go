package trakt

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenRequired is returned before sending a request to an endpoint that needs a token when none is stored
	ErrTokenRequired = errors.New("an access token is required for this endpoint; run the device authorization first")
	// ErrUnauthenticated is returned when the API answers 401
	ErrUnauthenticated = errors.New("access token is invalid or missing")
	// ErrForbidden is returned when the API answers 403 on an authenticated endpoint
	ErrForbidden = errors.New("access to this resource is forbidden for the current token")
	// ErrMissingCredentials is returned when client id or secret are not configured
	ErrMissingCredentials = errors.New("trakt client id and client secret must be configured")
)

// HTTPError is returned for any other non-success status
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s failed with status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether err is an HTTPError with status 404
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == 404
}
