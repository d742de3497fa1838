// createadmin 显式开通默认管理员，替代注册口的 magic email。
// 幂等：已存在则什么都不做。
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"devtasks/internal/core/config"
	"devtasks/internal/core/database"
	"devtasks/internal/core/logger"
	"devtasks/internal/domain"
	"devtasks/internal/repo"
	"devtasks/internal/service"
)

func main() {
	email := flag.String("email", "admin@admin.com", "admin email")
	password := flag.String("password", "admin", "admin password")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:   cfg.DB.Driver,
		DSN:      cfg.DB.DSN,
		LogLevel: cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Task{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	svc := service.NewAuthService(repo.NewUserRepo(db), cfg.Session.BootstrapAdminEmail)
	created, err := svc.Bootstrap(*email, *password)
	if err != nil {
		log.Fatal("bootstrap admin", zap.Error(err))
	}
	if created {
		log.Info("admin user created", zap.String("email", *email))
	} else {
		log.Info("admin user already exists", zap.String("email", *email))
	}
}
