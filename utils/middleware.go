package utils

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ristorante/storage"
)

// AdminRequired checks the Authorization header against the configured
// static admin token. It runs before any database or storage work, so a
// rejected request has no side effects.
func AdminRequired(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c.GetHeader("Authorization"), adminToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// IsAdmin reports whether header is "Bearer <adminToken>". An empty
// configured token never matches.
func IsAdmin(header, adminToken string) bool {
	if adminToken == "" {
		return false
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) == 1
}

// RequireDB short-circuits database-backed routes when DATABASE_URL was
// never configured.
func RequireDB(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "DATABASE_URL missing"})
			return
		}
		c.Next()
	}
}

// RequireStorage short-circuits image routes when no object store is
// configured.
func RequireStorage(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "storage not configured"})
			return
		}
		c.Next()
	}
}
