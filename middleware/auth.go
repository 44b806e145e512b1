package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	userRepo "clinicore/database/repository/user"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// JWTAuthMiddleware validates the bearer token and checks it against the
// account's stored session hash, so revoked sessions die immediately.
// The hash is looked up in the auth cache first, then the database.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		storedHash := sessionHash(users, subject)
		if storedHash == "" || storedHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		c.Set("userID", subject)
		c.Set("userRole", role)
		c.Next()
	}
}

// sessionHash returns the account's current session token hash, or ""
// when there is no live session.
func sessionHash(users userRepo.UserRepository, id string) string {
	if client := utils.AuthCacheClient; client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if hash, err := client.Get(ctx, "session:"+id).Result(); err == nil {
			return hash
		}
	}

	account, err := users.GetByIDWithProjection(id, bson.M{"token_hash": 1, "active": 1})
	if err != nil || account == nil || !account.Active {
		return ""
	}
	return account.TokenHash
}
