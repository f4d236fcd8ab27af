package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/portfolio-site/portfolio-backend/internal/auth"
)

// SessionIdentity records the email from the Google sign-in session cookie.
// An identity already established by a bearer token takes precedence.
func SessionIdentity(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions == nil || auth.UserEmail(c) != "" {
			c.Next()
			return
		}

		if email, ok := sessions.Email(c.Request); ok {
			auth.SetIdentity(c, auth.Identity{Email: email})
		}
		c.Next()
	}
}
