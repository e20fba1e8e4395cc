package rest

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// requireSession rejects requests without a resolvable X-Token.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := s.auth.Authenticate(c.Request.Context(), c.GetHeader(common.TokenHeaderName))
		if err != nil {
			s.abortWithError(c, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// optionalSession resolves X-Token when it can. A missing or stale token
// leaves the request anonymous; only a store outage is an error.
func (s *Server) optionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(common.TokenHeaderName)
		if token == "" {
			c.Next()
			return
		}

		userID, err := s.auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(userIDKey, userID)
		case errors.Is(err, common.ErrorUnauthorized):
		default:
			s.abortWithError(c, err)
			return
		}
		c.Next()
	}
}

// currentUser is "" for anonymous requests.
func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
