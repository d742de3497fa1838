package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UID   string `json:"uid"`
	Admin bool   `json:"adm"`
	jwt.RegisteredClaims
}

// Revoker 注销名单：登出后 jti 在剩余有效期内拒绝
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	Revoked(ctx context.Context, jti string) (bool, error)
}

var ErrRevoked = errors.New("session revoked")

type Sessions struct {
	Secret       []byte
	Issuer       string
	CookieName   string
	CookieSecure bool
	TTL          time.Duration // 普通登录
	RememberTTL  time.Duration // remember me
	Revoker      Revoker       // 可为 nil（无 redis 时退化为纯 JWT 过期）
}

// Issue 签发会话 JWT。remember=true 时返回的 maxAge>0，
// cookie 持久化；否则 maxAge=0，浏览器会话 cookie。
func (s *Sessions) Issue(uid string, admin, remember bool) (token string, maxAge int, err error) {
	ttl := s.TTL
	if remember {
		ttl = s.RememberTTL
	}
	now := time.Now()
	claims := Claims{
		UID:   uid,
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", 0, err
	}
	if remember {
		maxAge = int(ttl / time.Second)
	}
	return token, maxAge, nil
}

func (s *Sessions) Parse(ctx context.Context, tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithLeeway(60*time.Second))
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}
	if s.Revoker != nil {
		dead, err := s.Revoker.Revoked(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		if dead {
			return nil, ErrRevoked
		}
	}
	return c, nil
}

// Revoke 立即失效：jti 入名单，存活到 token 自然过期为止
func (s *Sessions) Revoke(ctx context.Context, c *Claims) error {
	if s.Revoker == nil || c.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(c.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.Revoker.Revoke(ctx, c.ID, ttl)
}
