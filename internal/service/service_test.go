package service_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"devtasks/internal/domain"
	"devtasks/internal/repo"
	"devtasks/internal/service"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	// :memory: 是按连接隔离的，锁死单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Task{}))
	return db
}

type fixture struct {
	users *repo.UserRepo
	tasks *repo.TaskRepo
	auth  *service.AuthService
	task  *service.TaskService
	admin *service.AdminService
}

func newFixture(t *testing.T) *fixture {
	db := testDB(t)
	users := repo.NewUserRepo(db)
	tasks := repo.NewTaskRepo(db)
	return &fixture{
		users: users,
		tasks: tasks,
		auth:  service.NewAuthService(users, "admin@admin.com"),
		task:  service.NewTaskService(tasks),
		admin: service.NewAdminService(users, tasks, nil),
	}
}
