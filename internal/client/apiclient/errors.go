package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/climatetracker/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// Unwrap maps the status code to the matching sentinel so callers can use
// errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return common.ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return common.ErrDuplicateUsername
	case http.StatusServiceUnavailable:
		return common.ErrExportDisabled
	default:
		return common.ErrorInternal
	}
}
