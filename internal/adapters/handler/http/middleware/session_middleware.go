package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

const (
	TimezoneHeader    = "X-Timezone"
	ContextSessionKey = "session"
)

// SessionAcquirer hands out the current session of a user.
type SessionAcquirer interface {
	Acquire(userID string, loc *time.Location) *services.Session
}

// ParseTimezone reads the IANA zone from the X-Timezone header. An absent header
// yields nil so the session manager falls back to its default zone.
func ParseTimezone(c *gin.Context) (*time.Location, error) {
	name := c.GetHeader(TimezoneHeader)
	if name == "" {
		return nil, nil
	}
	return time.LoadLocation(name)
}

// SessionMiddleware attaches the user's session, opening one when none is active.
// It must run after AuthMiddleware.
func SessionMiddleware(sessions SessionAcquirer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		loc, err := ParseTimezone(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid X-Timezone header"})
			return
		}

		c.Set(ContextSessionKey, sessions.Acquire(userID, loc))
		c.Next()
	}
}

func GetSession(c *gin.Context) (*services.Session, bool) {
	v, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*services.Session)
	return sess, ok && sess != nil
}
