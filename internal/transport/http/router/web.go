package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"devtasks/internal/core/auth"
	"devtasks/internal/domain"
	"devtasks/internal/transport/http/handler"
	mdw "devtasks/internal/transport/http/middleware"
	"devtasks/internal/transport/http/view"
)

type Deps struct {
	Log      *zap.Logger
	Sessions *auth.Sessions
	Users    domain.UserRepository
	Auth     *handler.AuthHandler
	Tasks    *handler.TaskHandler
	Admin    *handler.AdminHandler
}

func NewWebEngine(d Deps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(view.Templates())

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		cors.Default(),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		mdw.LoadSession(d.Sessions, d.Users),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 登录口单独再加每 IP 限速，防爆破
	loginLimit := mdw.RateLimitPerIP(5, 10)

	ag := r.Group("/auth")
	{
		ag.GET("/login", mdw.AnonymousOnly(), d.Auth.ShowLogin)
		ag.POST("/login", mdw.AnonymousOnly(), loginLimit, d.Auth.Login)
		ag.GET("/register", mdw.AnonymousOnly(), d.Auth.ShowRegister)
		ag.POST("/register", mdw.AnonymousOnly(), loginLimit, d.Auth.Register)
		ag.GET("/logout", mdw.RequireAuth(), d.Auth.Logout)
		ag.GET("/login/:provider", mdw.AnonymousOnly(), d.Auth.OAuthLogin)
		ag.GET("/callback/:provider", mdw.AnonymousOnly(), d.Auth.OAuthCallback)
		ag.GET("/profile", mdw.RequireAuth(), d.Auth.ShowProfile)
		ag.POST("/profile", mdw.RequireAuth(), d.Auth.UpdateProfile)
	}

	r.GET("/", mdw.RequireAuth(), d.Tasks.Index)

	tg := r.Group("/task", mdw.RequireAuth())
	{
		tg.POST("/add", d.Tasks.Add)
		tg.POST("/:id/toggle", d.Tasks.Toggle)
		tg.POST("/:id/delete", d.Tasks.Delete)
	}

	adg := r.Group("/admin", mdw.RequireAdmin())
	{
		adg.GET("/", d.Admin.Dashboard)
		adg.POST("/user/create", d.Admin.CreateUser)
		adg.GET("/user/:id/edit", d.Admin.ShowEditUser)
		adg.POST("/user/:id/edit", d.Admin.EditUser)
		adg.POST("/user/:id/delete", d.Admin.DeleteUser)
	}

	return r
}
