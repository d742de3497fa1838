package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	coreauth "devtasks/internal/core/auth"
	"devtasks/internal/core/cache"
	"devtasks/internal/core/config"
	"devtasks/internal/core/database"
	"devtasks/internal/core/logger"
	"devtasks/internal/core/server"
	"devtasks/internal/domain"
	"devtasks/internal/oauth"
	"devtasks/internal/repo"
	"devtasks/internal/service"
	"devtasks/internal/transport/http/handler"
	"devtasks/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Task{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// redis 可选：没有就退化成无注销名单 + 无统计缓存
	var (
		stats   *cache.Cache
		revoker coreauth.Revoker
	)
	if cfg.Redis.Enable {
		stats = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		revoker = cache.NewSessionRevoker(stats)
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	} else {
		log.Warn("redis disabled: logout falls back to cookie clearing only")
	}

	sessions := &coreauth.Sessions{
		Secret:       []byte(cfg.Session.Secret),
		Issuer:       cfg.Session.Issuer,
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.CookieSecure,
		TTL:          time.Duration(cfg.Session.TTLHours) * time.Hour,
		RememberTTL:  time.Duration(cfg.Session.RememberTTLHours) * time.Hour,
		Revoker:      revoker,
	}

	userRepo := repo.NewUserRepo(db)
	taskRepo := repo.NewTaskRepo(db)
	authSvc := service.NewAuthService(userRepo, cfg.Session.BootstrapAdminEmail)
	taskSvc := service.NewTaskService(taskRepo)
	adminSvc := service.NewAdminService(userRepo, taskRepo, stats)

	providers := buildProviders(cfg)

	r := router.NewWebEngine(router.Deps{
		Log:      log,
		Sessions: sessions,
		Users:    userRepo,
		Auth:     handler.NewAuthHandler(authSvc, sessions, providers, log),
		Tasks:    handler.NewTaskHandler(taskSvc, log),
		Admin:    handler.NewAdminHandler(adminSvc),
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("devtasks starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("devtasks start FAILED", zap.Error(err))
		}
	}()
	log.Info("devtasks started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("devtasks stopped gracefully")
}

func buildProviders(cfg *config.Config) *oauth.Registry {
	reg := oauth.NewRegistry()
	callback := func(p string) string { return cfg.App.BaseURL + "/auth/callback/" + p }
	if cfg.OAuth.Google.ClientID != "" {
		_ = reg.Use(oauth.NewGoogle(cfg.OAuth.Google.ClientID, cfg.OAuth.Google.ClientSecret, callback("google")))
	}
	if cfg.OAuth.GitHub.ClientID != "" {
		_ = reg.Use(oauth.NewGitHub(cfg.OAuth.GitHub.ClientID, cfg.OAuth.GitHub.ClientSecret, callback("github")))
	}
	if cfg.OAuth.Facebook.ClientID != "" {
		_ = reg.Use(oauth.NewFacebook(cfg.OAuth.Facebook.ClientID, cfg.OAuth.Facebook.ClientSecret, callback("facebook")))
	}
	return reg
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
