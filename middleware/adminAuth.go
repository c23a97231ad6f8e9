package middleware

import (
	"crypto/subtle"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var bearerPrefix = regexp.MustCompile(`(?i)^Bearer\s+`)

// AdminAuthMiddleware guards admin routes with a static bearer credential. The credential is
// compared against apiKey, or against hash (bcrypt) when apiKey is empty.
func AdminAuthMiddleware(apiKey, hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" && hash == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "ADMIN_API_KEY is not configured"})
			return
		}

		token := BearerToken(c.GetHeader("Authorization"))
		if token == "" || !adminTokenMatches(token, apiKey, hash) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}

// BearerToken strips an optional, case-insensitive "Bearer " prefix.
func BearerToken(header string) string {
	return strings.TrimSpace(bearerPrefix.ReplaceAllString(header, ""))
}

func adminTokenMatches(token, apiKey, hash string) bool {
	if apiKey != "" {
		return subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
