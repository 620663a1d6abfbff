package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"blogapp/utils"

	"github.com/gin-gonic/gin"
)

// 上下文键：经核验的访问者 id
const CtxUserID = "userID"

// bearerToken 从 Authorization 头取出凭证
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", utils.ErrTokenMissing
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", utils.ErrTokenInvalid
	}
	return parts[1], nil
}

func abortUnauthorized(c *gin.Context, err error) {
	msg := "Unauthorized - Invalid token"
	switch {
	case errors.Is(err, utils.ErrTokenMissing):
		msg = "Unauthorized - No token provided"
	case errors.Is(err, utils.ErrTokenExpired):
		msg = "Unauthorized - Token expired"
	}
	c.JSON(http.StatusUnauthorized, gin.H{"msg": msg})
	c.Abort()
}

// AuthMiddleware 受保护路由：凭证缺失/无效/过期一律 401，文案可区分。
// 这里只核验身份，角色判定交给各写接口每次查库
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		claims, err := utils.ParseJWT(token)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware 信息流等读路由：没带凭证按匿名放行，
// 带了但验不过仍然 401——不能把自称登录的访问者静默降级成匿名
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		token, err := bearerToken(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		claims, err := utils.ParseJWT(token)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Next()
	}
}

// ViewerID 读出访问者 id，匿名为 0
func ViewerID(c *gin.Context) uint {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
