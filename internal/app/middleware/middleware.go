package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Pravin-Jalodiya/codesage-web/internal/app/session"
)

const sessionContextKey = "codesage_session_state"

// CORSMiddleware handles CORS headers for the UI origin.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers.
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("X-XSS-Protection", "1; mode=block")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// SessionMiddleware derives the session state once per request and shares it
// through the context, so guards and handlers consult the same instance.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionContextKey, session.FromContext(c))
		c.Next()
	}
}

// GetSessionFromContext returns the request's session state. It falls back
// to deriving a fresh one so handlers stay usable in isolation under test.
func GetSessionFromContext(c *gin.Context) *session.State {
	if v, exists := c.Get(sessionContextKey); exists {
		if state, ok := v.(*session.State); ok {
			return state
		}
	}
	return session.FromContext(c)
}
