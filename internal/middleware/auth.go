package middleware

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const CheckUserKey = "user_id"

// SessionCookie 身份服务写入的会话令牌 cookie
const SessionCookie = "__session"

// ParsePublicKey 解析身份服务的 PEM 公钥，兼容环境变量里写成 \n 的换行
func ParsePublicKey(pemKey string) (*rsa.PublicKey, error) {
	pemKey = strings.TrimSpace(strings.ReplaceAll(pemKey, `\n`, "\n"))
	if pemKey == "" {
		return nil, nil
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("parse clerk public key: %w", err)
	}
	return key, nil
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// VerifyToken 校验 RS256 会话令牌并返回 sub
func VerifyToken(key *rsa.PublicKey, raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5*time.Second),
	)
	if err != nil {
		return "", err
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

// LoadUser 从请求中识别用户，令牌缺失或无效时按匿名处理，不拦截请求
func LoadUser(key *rsa.PublicKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key != nil {
			if raw := bearerToken(c); raw != "" {
				if sub, err := VerifyToken(key, raw); err == nil {
					c.Set(CheckUserKey, sub)
				}
			}
		}
		c.Next()
	}
}

// CurrentUserID 当前用户 ID，匿名时为空串
func CurrentUserID(c *gin.Context) string {
	return c.GetString(CheckUserKey)
}

// AuthRequired 只读接口需要登录时使用，匿名返回 401
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sign in required"})
			return
		}
		c.Next()
	}
}
