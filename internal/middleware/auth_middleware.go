package middleware

import (
	"net/http"

	"todoapi/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDKey is the gin context key holding the verified subject.
	UserIDKey = "userID"
	// UserEmailKey is the gin context key holding the token's email claim.
	UserEmailKey = "userEmail"
)

// JWTAuthMiddleware resolves the caller's identity before any handler runs.
// A request with no credential and a request with a bad one are distinct
// events (and logged as such by gin) but both answer 401. The database is
// never touched here.
func JWTAuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := verifier.TokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization code or missing token."})
			return
		}

		identity, err := verifier.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token or expired token."})
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(UserEmailKey, identity.Email)
		c.Next()
	}
}
