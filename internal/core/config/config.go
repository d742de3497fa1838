package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name    string
	Env     string
	BaseURL string // 对外地址，OAuth 回调用
	HTTP    HTTP
}

type Log struct {
	Level string
	JSON  bool
	// File 非空时启用滚动日志文件
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Session 会话 cookie（JWT）相关
type Session struct {
	Secret              string
	Issuer              string
	CookieName          string
	CookieSecure        bool
	TTLHours            int // 普通登录
	RememberTTLHours    int // 勾选 remember me
	BootstrapAdminEmail string
}

type Redis struct {
	Enable   bool   `mapstructure:"enable"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string // postgres / mysql / sqlite
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// OAuthProvider 单个身份提供方的接入参数
type OAuthProvider struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

type OAuth struct {
	Google   OAuthProvider `mapstructure:"google"`
	GitHub   OAuthProvider `mapstructure:"github"`
	Facebook OAuthProvider `mapstructure:"facebook"`
}

type Config struct {
	App     App
	Log     Log
	Session Session
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	OAuth   OAuth `mapstructure:"oauth"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "DevTasks")
	v.SetDefault("log.maxsizemb", 100)
	v.SetDefault("log.maxbackups", 7)
	v.SetDefault("log.maxagedays", 30)
	v.SetDefault("session.cookiename", "devtasks_session")
	v.SetDefault("session.ttlhours", 24)
	v.SetDefault("session.rememberttlhours", 24*30)
	v.SetDefault("session.bootstrapadminemail", "admin@admin.com")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "todo.db")
	v.SetDefault("db.automigrate", true)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}
