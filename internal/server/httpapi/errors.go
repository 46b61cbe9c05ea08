package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/climatetracker/internal/common"
	"github.com/dmitrijs2005/climatetracker/internal/server/chart"
	"github.com/gin-gonic/gin"
)

const (
	msgStorageUnavailable = "Storage is unavailable, please try again later."
	msgInternal           = "Internal error, please try again later."
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, chart.ErrNothingToPlot),
		errors.Is(err, chart.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrExportDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code and a user-visible message. Details
// of server-side failures are logged, not returned.
func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)

	msg := err.Error()
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		msg = common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrInvalidToken):
		msg = common.ErrInvalidToken.Error()
	case status >= http.StatusInternalServerError && errors.Is(err, common.ErrStorage):
		msg = msgStorageUnavailable
	case status == http.StatusInternalServerError:
		msg = msgInternal
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request error", "path", c.Request.URL.Path, "error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
