package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"devtasks/internal/core/auth"
	"devtasks/internal/oauth"
	"devtasks/internal/service"
	mdw "devtasks/internal/transport/http/middleware"
	"devtasks/internal/transport/http/view"
)

const stateCookie = "devtasks_oauth_state"

type AuthHandler struct {
	svc       *service.AuthService
	sessions  *auth.Sessions
	providers *oauth.Registry
	log       *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, sessions *auth.Sessions, providers *oauth.Registry, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, providers: providers, log: log}
}

func (h *AuthHandler) setSession(c *gin.Context, uid string, admin, remember bool) error {
	tok, maxAge, err := h.sessions.Issue(uid, admin, remember)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessions.CookieName, tok, maxAge, "/", "", h.sessions.CookieSecure, true)
	return nil
}

func (h *AuthHandler) clearSession(c *gin.Context) {
	c.SetCookie(h.sessions.CookieName, "", -1, "/", "", h.sessions.CookieSecure, true)
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	view.HTML(c, http.StatusOK, "login.tmpl", gin.H{"Title": "Login", "User": mdw.CurrentUser(c), "Email": ""})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
		Remember string `form:"remember" json:"remember"`
	}
	_ = c.ShouldBind(&in)

	u, err := h.svc.Login(in.Email, in.Password)
	if err != nil {
		fail(c, err, "/auth/login")
		return
	}
	remember := in.Remember == "1" || in.Remember == "on" || in.Remember == "true"
	if err := h.setSession(c, u.ID, u.IsAdmin, remember); err != nil {
		fail(c, err, "/auth/login")
		return
	}
	view.SetFlash(c, "success", "Logged in successfully")
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	view.HTML(c, http.StatusOK, "register.tmpl", gin.H{"Title": "Register", "User": mdw.CurrentUser(c), "Email": ""})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
	}
	_ = c.ShouldBind(&in)

	if _, err := h.svc.Register(in.Email, in.Password); err != nil {
		fail(c, err, "/auth/register")
		return
	}
	view.SetFlash(c, "success", "Registration successful, please login")
	c.Redirect(http.StatusFound, "/auth/login")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := mdw.SessionClaims(c); claims != nil {
		if err := h.sessions.Revoke(c.Request.Context(), claims); err != nil {
			h.log.Warn("session revoke", zap.Error(err))
		}
	}
	h.clearSession(c)
	view.SetFlash(c, "info", "Logged out")
	c.Redirect(http.StatusFound, "/auth/login")
}

// OAuthLogin 跳到提供方授权页，state 临时种在 cookie，回调时校验
func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	p, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		view.SetFlash(c, "danger", "Unsupported provider")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, 600, "/", "", h.sessions.CookieSecure, true)
	c.Redirect(http.StatusFound, p.LoginURL(state))
}

func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	name := c.Param("provider")
	p, err := h.providers.Get(name)
	if err != nil {
		view.SetFlash(c, "danger", "Unsupported provider")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	saved, _ := c.Cookie(stateCookie)
	c.SetCookie(stateCookie, "", -1, "/", "", h.sessions.CookieSecure, true)
	if saved == "" || saved != c.Query("state") {
		view.SetFlash(c, "danger", "Authorization failed, please retry")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	profile, err := p.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.log.Warn("oauth exchange", zap.String("provider", name), zap.Error(err))
		view.SetFlash(c, "danger", "Authorization failed, please retry")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	u, err := h.svc.FederatedSignIn(name, profile)
	if err != nil {
		fail(c, err, "/auth/login")
		return
	}
	if err := h.setSession(c, u.ID, u.IsAdmin, false); err != nil {
		fail(c, err, "/auth/login")
		return
	}
	view.SetFlash(c, "success", "Logged in via "+name)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowProfile(c *gin.Context) {
	view.HTML(c, http.StatusOK, "profile.tmpl", gin.H{"Title": "Profile", "User": mdw.CurrentUser(c)})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var in struct {
		Name            string `form:"name" json:"name"`
		Bio             string `form:"bio" json:"bio"`
		Avatar          string `form:"avatar" json:"avatar"`
		CurrentPassword string `form:"current_password" json:"current_password"`
		NewPassword     string `form:"new_password" json:"new_password"`
	}
	_ = c.ShouldBind(&in)

	u := mdw.CurrentUser(c)
	if _, err := h.svc.UpdateProfile(u.ID, service.ProfileUpdate{
		Name:            in.Name,
		Bio:             in.Bio,
		Avatar:          in.Avatar,
		CurrentPassword: in.CurrentPassword,
		NewPassword:     in.NewPassword,
	}); err != nil {
		fail(c, err, "/auth/profile")
		return
	}
	view.SetFlash(c, "success", "Profile updated")
	c.Redirect(http.StatusFound, "/auth/profile")
}
