// middlewares/session_middleware.go
package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionCookie = "habitlog_session"

// SessionMiddleware assigns a cookie session id on first contact. The id
// scopes the in-memory staging list so two browsers don't share a pending
// day.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(SessionCookie, sid, 60*60*24*30, "/", "", false, true)
		}
		c.Set("sessionID", sid)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString("sessionID")
}
