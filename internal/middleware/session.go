package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the visitor session id in both directions.
	SessionHeader = "X-Session-ID"
	// ContextSessionKey stores the session id in the gin context.
	ContextSessionKey = "sessionID"

	maxSessionIDLength = 64
)

// Session reads the visitor session id, minting a new one when absent or malformed, and echoes it back.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if !validSessionID(id) {
			id = uuid.NewString()
		}
		c.Set(ContextSessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// SessionID returns the session id set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionKey)
}

func validSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
