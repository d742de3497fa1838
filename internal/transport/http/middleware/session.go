package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devtasks/internal/core/auth"
	"devtasks/internal/domain"
	resp "devtasks/internal/transport/http/response"
	"devtasks/internal/transport/http/view"
)

const (
	ctxUser   = "currentUser"
	ctxClaims = "sessionClaims"
)

// LoadSession 尽力解析会话 cookie 并把用户放进上下文，不拦截；
// 拦截交给 RequireAuth / RequireAdmin。
func LoadSession(s *auth.Sessions, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(s.CookieName)
		if err != nil || tok == "" {
			c.Next()
			return
		}
		claims, err := s.Parse(c.Request.Context(), tok)
		if err != nil {
			c.Next()
			return
		}
		u, err := users.FindByID(claims.UID)
		if err != nil || u == nil {
			c.Next()
			return
		}
		c.Set(ctxClaims, claims)
		c.Set(ctxUser, u)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

func SessionClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ctxClaims); ok {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

// RequireAuth 未登录：HTML 流 302 到登录页，脚本流 401
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}
		if view.WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "login required"))
			return
		}
		c.Redirect(http.StatusFound, "/auth/login")
		c.Abort()
	}
}

// RequireAdmin 已登录但非管理员是硬错误 403，不是重定向
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			if view.WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "login required"))
				return
			}
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		if !u.IsAdmin {
			if view.WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, "forbidden"))
				return
			}
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// AnonymousOnly 登录页/注册页对已登录用户直接回首页
func AnonymousOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
