package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RevivalFireMinistries/dept-selection-app/pkg/jwt"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/redis"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/response"
)

// AdminAuth verifies the session token from Authorization: Bearer <token>
// and rejects tokens revoked through logout. rdb may be nil; revocation
// checks are then skipped.
func AdminAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			response.Forbidden(c, 10003, "admin access required")
			c.Abort()
			return
		}

		if rdb != nil && claims.ID != "" {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set("jti", claims.ID)

		c.Next()
	}
}
