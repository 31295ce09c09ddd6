package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DemoToken 演示回退时写入的凭据
	// DemoToken is the sentinel credential persisted by the demo fallback
	DemoToken = "demo-token"

	demoUserID    = "1"
	demoUserEmail = "demo@example.com"
)

// sessionClaims 凭据里可能携带的身份字段
// sessionClaims are the identity fields a backend JWT may carry
type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// sessionFromToken 从未校验的 JWT 中读出身份；不是 JWT 或没有身份字段时返回 false
// sessionFromToken reads identity from a JWT without verifying its signature
func sessionFromToken(token string) (Session, bool) {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return Session{}, false
	}
	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Session{}, false
	}
	s := Session{
		ID:          strings.TrimSpace(claims.Subject),
		Email:       strings.TrimSpace(claims.Email),
		DisplayName: strings.TrimSpace(claims.Name),
	}
	if s.ID == "" && s.Email == "" {
		return Session{}, false
	}
	return s, true
}

// restoredSession 启动时根据持久化凭据重建会话
// restoredSession rebuilds a session from a persisted credential without contacting the server
func restoredSession(token string) Session {
	if s, ok := sessionFromToken(token); ok {
		return s
	}
	return Session{ID: demoUserID, Email: demoUserEmail}
}
