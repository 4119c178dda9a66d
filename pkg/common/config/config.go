package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type ServerConfig struct {
	Address string `json:"address"`
}

// UpstreamConfig 上游公告板 API 的连接配置
type UpstreamConfig struct {
	BaseURL     string `json:"baseUrl"`     // 上游根地址
	DialTimeout int    `json:"dialTimeout"` // 单位：秒
	ReadTimeout int    `json:"readTimeout"` // 单位：秒
}

// SessionConfig 前端会话 cookie（签名 JWT，内载上游会话凭证）
type SessionConfig struct {
	CookieName     string        `json:"cookieName"`
	Secret         string        `json:"secret"`
	ExpireDuration time.Duration `json:"expireDuration"`
	Issuer         string        `json:"issuer"`
}

type CORSConfig struct {
	AllowOrigins     []string      `json:"allowOrigins"`
	AllowMethods     []string      `json:"allowMethods"`
	AllowHeaders     []string      `json:"allowHeaders"`
	ExposeHeaders    []string      `json:"exposeHeaders"`
	AllowCredentials bool          `json:"allowCredentials"`
	MaxAge           time.Duration `json:"maxAge"`
}

type RateLimitConfig struct {
	Rate     int           `json:"rate"`
	Interval time.Duration `json:"interval"`
}

type MiddlewareConfig struct {
	CORS      CORSConfig      `json:"cors"`
	RateLimit RateLimitConfig `json:"rateLimit"`
}

type Config struct {
	Server     ServerConfig     `json:"server"`
	Upstream   UpstreamConfig   `json:"upstream"`
	Session    SessionConfig    `json:"session"`
	Middleware MiddlewareConfig `json:"middleware"`
	Env        string           `json:"env"` // 环境标识
}

var defaultConfig = Config{
	Server: ServerConfig{
		Address: ":8090",
	},
	Upstream: UpstreamConfig{
		BaseURL:     "http://localhost:8080",
		DialTimeout: 5,
		ReadTimeout: 15,
	},
	Session: SessionConfig{
		CookieName:     "board_session",
		Secret:         "dev-secret-change-me-in-production", // 开发环境默认密钥
		ExpireDuration: 24 * time.Hour,
		Issuer:         "board-front",
	},
	Middleware: MiddlewareConfig{
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Rate:     10,
			Interval: time.Second,
		},
	},
	Env: "development",
}

// IsProd 判断当前是否生产环境
func (c *Config) IsProd() bool {
	return c.Env == "production"
}

// Load 加载配置（优先级：环境变量 > 配置文件 > 默认值）
func Load() *Config {
	config := defaultConfig

	// 1. 尝试从配置文件加载
	configPath := getConfigPath()
	if configPath != "" {
		if err := loadFromFile(&config, configPath); err != nil {
			hlog.Warnf("Failed to load config file: %v", err)
		}
	}

	// 2. 从环境变量覆盖
	loadFromEnv(&config)

	return &config
}

// getConfigPath 获取配置文件路径
func getConfigPath() string {
	// 优先使用环境变量指定的配置文件路径
	if path := os.Getenv("APP_CONFIG"); path != "" {
		return path
	}

	// 依次查找可能的配置文件位置
	searchPaths := []string{
		"./config.json",                // 当前目录
		"../config.json",               // 上级目录
		"/etc/board-front/config.json", // 系统配置目录
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadFromFile 从文件加载配置
func loadFromFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, config)
}

// loadFromEnv 从环境变量加载配置
func loadFromEnv(config *Config) {
	// 服务器配置
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		config.Server.Address = v
	}

	// 环境配置
	if v := os.Getenv("APP_ENV"); v != "" {
		config.Env = v
	}

	// 上游配置
	if v := os.Getenv("UPSTREAM_BASE_URL"); v != "" {
		config.Upstream.BaseURL = v
	}

	if v := os.Getenv("UPSTREAM_DIAL_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			config.Upstream.DialTimeout = timeout
		}
	}

	if v := os.Getenv("UPSTREAM_READ_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			config.Upstream.ReadTimeout = timeout
		}
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if rate, err := strconv.Atoi(v); err == nil {
			config.Middleware.RateLimit.Rate = rate
		}
	}

	/****** 会话配置 ******/
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		config.Session.Secret = v
	}

	if v := os.Getenv("SESSION_COOKIE"); v != "" {
		config.Session.CookieName = v
	}

	if v := os.Getenv("SESSION_EXPIRATION"); v != "" {
		if duration, err := time.ParseDuration(v); err == nil {
			config.Session.ExpireDuration = duration
		} else {
			hlog.Warnf("Invalid SESSION_EXPIRATION format: %v", err)
		}
	}

	if v := os.Getenv("SESSION_ISSUER"); v != "" {
		config.Session.Issuer = v
	}
}
