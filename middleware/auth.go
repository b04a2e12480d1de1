package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	appctx "Agora/pkg/context"
	"Agora/pkg/jwt"
	"Agora/pkg/response"

	"github.com/gin-gonic/gin"
)

// 距离过期不足该时长时下发新 token
const renewBefore = 20 * time.Second

func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TokenTypeAccess, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		if jwt.ShouldRotateRefreshToken(claims, renewBefore) {
			if newToken, err := jwt.GenerateToken(secret, claims.UserID, jwt.TokenTypeAccess, time.Hour); err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}
		c.Set(appctx.CtxUserID, claims.UserID)

		c.Next()
	}
}

// AdminToken 管理接口校验 X-Admin-Token，未配置 token 时一律拒绝
func AdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("X-Admin-Token")
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			response.Abort(c, http.StatusForbidden, "无权限")
			return
		}
		c.Next()
	}
}
