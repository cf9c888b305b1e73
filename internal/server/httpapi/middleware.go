package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/authd/internal/server/auth"
)

// contextClaimsKey is the gin context key under which requireAuth stores the
// verified session claims for the handler.
const contextClaimsKey = "auth.claims"

// requireAuth gates protected routes on the presence of a valid session.
// The request is rejected before the handler runs; no partial work happens
// on a failed gate. Missing cookie, bad signature, expiry, and malformed
// tokens are indistinguishable to the client.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.ClaimsFromRequest(c.Request, s.jwtSecret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "unauthorized",
			})
			return
		}

		c.Set(contextClaimsKey, claims)
		c.Next()
	}
}

// sessionClaims returns the claims stashed by requireAuth, if any.
func sessionClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(contextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// requestLogger tags every request with a generated id and logs its outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
