package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"eventra/models"
	"eventra/utils"

	"github.com/gin-gonic/gin"
)

// IdentityKey is the gin context key the auth middleware stores the caller
// identity under.
const IdentityKey = "identity"

// JWTAuthMiddleware verifies the bearer token, extracts the caller identity
// (user id + role), and places it into the request context. Verified tokens
// are cached in Redis by hash so repeat requests skip signature checks.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		identity, ok := cachedIdentity(tokenString)
		if !ok {
			var err error
			identity, err = utils.IdentityFromToken(tokenString)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid or expired token",
					"code":  0,
				})
				return
			}
			cacheIdentity(tokenString, identity)
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// RequireRole rejects callers whose token carries a different role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
				"code":  403,
			})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity stored by
// JWTAuthMiddleware.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := val.(models.Identity)
	return identity, ok
}

func cachedIdentity(tokenString string) (models.Identity, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := utils.AuthCachePrefix + utils.HashToken(tokenString)
	vals, err := utils.GetAuthCacheClient().HGetAll(ctx, key).Result()
	if err != nil || len(vals) == 0 {
		return models.Identity{}, false
	}

	identity := models.Identity{
		UserID: vals["userId"],
		Role:   models.Role(vals["role"]),
	}
	if identity.UserID == "" || (identity.Role != models.RoleVendor && identity.Role != models.RoleCustomer) {
		return models.Identity{}, false
	}
	return identity, true
}

func cacheIdentity(tokenString string, identity models.Identity) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := utils.AuthCachePrefix + utils.HashToken(tokenString)
	client := utils.GetAuthCacheClient()
	pipe := client.TxPipeline()
	pipe.HSet(ctx, key, "userId", identity.UserID, "role", string(identity.Role))
	pipe.Expire(ctx, key, utils.AuthCacheTTL)
	_, _ = pipe.Exec(ctx)
}
