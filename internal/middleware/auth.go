package middleware

import (
	"net/http"
	"strings"

	"Debt_BBS/internal/pkg"
	"Debt_BBS/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const (
	ContextAdminIDKey   = "admin_id"
	ContextAdminRoleKey = "admin_role"
)

// AdminID 从上下文取管理员ID，不存在表示匿名请求
func AdminID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ContextAdminIDKey)
	if !ok {
		return 0, false
	}
	return v.(uint64), true
}

// IsModerator 请求是否来自已登录的管理员
func IsModerator(c *gin.Context) bool {
	_, ok := c.Get(ContextAdminIDKey)
	return ok
}

// verifyToken Bearer token 校验：JWT 有效且与 redis 里的存根一致
func verifyToken(c *gin.Context) (*pkg.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	tokenStr := parts[1]

	claims, err := pkg.ParseAccess(tokenStr)
	if err != nil {
		return nil, false
	}

	// redis 校验，登出后 token 立刻失效
	sessionRepo := &redis.AdminRepository{}
	originToken, err := sessionRepo.GetToken(claims.AdminID)
	if err != nil || originToken != tokenStr {
		return nil, false
	}

	// 校验通过顺延过期时间
	_ = sessionRepo.ExtendToken(claims.AdminID)
	return claims, true
}

// AuthMiddleware 管理员专用接口：没有有效会话直接 401
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := verifyToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextAdminIDKey, claims.AdminID)
		c.Set(ContextAdminRoleKey, claims.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware 匿名口用：带了有效 token 就标记成管理员，没带照常放行。
// 投稿引擎靠这个区分要不要查 IP 封禁、要不要换 persona ID。
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := verifyToken(c); ok {
			c.Set(ContextAdminIDKey, claims.AdminID)
			c.Set(ContextAdminRoleKey, claims.Role)
		}
		c.Next()
	}
}
