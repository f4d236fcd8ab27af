package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/portfolio-site/portfolio-backend/internal/auth"
)

// FirebaseIdentity validates an optional Firebase ID token and records the
// caller's email. Requests without a valid token continue anonymously; the
// project service decides what an anonymous caller may do.
func FirebaseIdentity(verifier auth.TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" || verifier == nil {
			c.Next()
			return
		}

		decodedToken, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			logger.Debug("rejected firebase id token", zap.Error(err))
			c.Next()
			return
		}

		if email, ok := auth.EmailFromToken(decodedToken); ok {
			auth.SetIdentity(c, auth.Identity{Email: email})
		}

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
