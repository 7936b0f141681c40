package main

import (
	"net/http"
	"strings"

	"foliohub/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// requireAuth admits only requests carrying a well-formed, signature-valid,
// unexpired bearer token, attaching the decoded claims to the context.
func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing or invalid Authorization header"})
			return
		}
		claims, err := parseToken(strings.TrimPrefix(header, "Bearer "), cfg.JWT.Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// requireAdmin re-fetches the account's current role and compares it to
// the role baked into the token. A mismatch means the role changed after
// issuance; the client gets a distinguished signal to log in again rather
// than a bare 403.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := tokenClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		var u models.User
		if err := db.First(&u, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "account not found"})
			return
		}
		if u.Role != claims.Role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "role has changed, please log in again",
				"code":    "role_changed",
			})
			return
		}
		if u.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}

// tokenClaims returns the claims attached by requireAuth, or nil.
func tokenClaims(c *gin.Context) *Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	})
}
