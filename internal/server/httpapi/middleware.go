package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/climatetracker/internal/common"
	"github.com/dmitrijs2005/climatetracker/internal/logging"
	"github.com/dmitrijs2005/climatetracker/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDHeader echoes the id that tags every log line of a request.
const requestIDHeader = "X-Request-ID"

// requestLogger tags the request context with a request id, then logs the
// outcome once the handlers are done.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithFields(c.Request.Context(), "request_id", id))

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Error(c.Request.Context(), "request failed", args...)
			return
		}
		s.logger.Info(c.Request.Context(), "request", args...)
	}
}

// accessTokenRequired turns the bearer access token into an auth.Session
// stored on the request context.
func (s *Server) accessTokenRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		accessToken, found := strings.CutPrefix(header, common.BearerPrefix)
		if !found || accessToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		username, err := auth.GetUsernameFromToken(accessToken, s.jwtSecret)
		if err != nil {
			msg := "invalid token"
			if auth.IsExpired(err) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		ctx := auth.WithSession(c.Request.Context(), auth.Session{Username: username})
		ctx = logging.WithFields(ctx, "username", username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func session(c *gin.Context) auth.Session {
	s, _ := auth.SessionFromContext(c.Request.Context())
	return s
}
