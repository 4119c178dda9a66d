package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"board-front/pkg/common/config"
)

// 前端会话 cookie 的内容是一个签名 JWT，里面只放两样东西：
// 登录用户的账号和上游下发的会话凭证。身份本身每次请求都从上游重新派生，
// 这里不缓存任何用户资料。

// IssueSessionToken 登录成功后签发前端会话令牌
func IssueSessionToken(cfg *config.SessionConfig, userID, upstreamCookie string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"upstream": upstreamCookie,
		"exp":      time.Now().Add(cfg.ExpireDuration).Unix(), // 过期时间
		"iss":      cfg.Issuer,                                // 签发方
	})
	return token.SignedString([]byte(cfg.Secret))
}

// ParseSessionToken 解析前端会话令牌，取出上游会话凭证。
// 任何解析失败都按匿名处理，不区分原因
func ParseSessionToken(cfg *config.SessionConfig, raw string) (upstreamCookie string, ok bool) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer))
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	upstream, _ := claims["upstream"].(string)
	if upstream == "" {
		return "", false
	}
	return upstream, true
}
