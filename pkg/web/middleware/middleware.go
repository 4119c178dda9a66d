package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/google/uuid"
	"github.com/hertz-contrib/cors"

	"board-front/pkg/common/config"
	"board-front/pkg/core/authz"
	"board-front/pkg/core/session"
)

// sessionKey 请求上下文里的会话存储键
const sessionKey = "board_session_store"

// LoggerMiddleware 结构化的请求日志记录
func LoggerMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c) // 放行到后续处理器
		latency := time.Since(start)

		// 结构化日志输出
		hlog.CtxTracef(c, "| %3d | %13v | %15s | %-7s | %s | RID=%s",
			ctx.Response.StatusCode(),
			latency,
			ctx.ClientIP(),
			ctx.Method(),
			ctx.Path(),
			ctx.Response.Header.Get("X-Request-ID"),
		)
	}
}

// RequestIDMiddleware 为每个请求生成追踪标识
func RequestIDMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		rid := string(ctx.GetHeader("X-Request-ID"))
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Response.Header.Set("X-Request-ID", rid)
		ctx.Next(c)
	}
}

// RecoveryMiddleware 增强型异常捕获（带配置依赖版本）
func RecoveryMiddleware(cfg *config.Config) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				// 获取调用堆栈
				stack := string(debug.Stack())

				hlog.CtxErrorf(c, "[PANIC RECOVERED] %v\n%s", err, stack)

				// 生产环境处理
				if cfg.IsProd() { // 使用注入的配置实例判断环境
					ctx.AbortWithStatusJSON(500, map[string]interface{}{
						"code":    500,
						"message": "internal server error",
					})
				} else { // 开发环境显示详细错误
					ctx.AbortWithStatusJSON(500, map[string]interface{}{
						"code":  500,
						"error": fmt.Sprintf("%v", err),     // 转换为字符串格式
						"stack": strings.Split(stack, "\n"), // 切割为字符串数组更易读
					})
				}
			}
		}()
		ctx.Next(c)
	}
}

// CORSMiddleware 安全的跨域配置
func CORSMiddleware(corsConfig config.CORSConfig) app.HandlerFunc {
	return cors.New(
		cors.Config{
			AllowOrigins:     corsConfig.AllowOrigins,
			AllowMethods:     corsConfig.AllowMethods,
			AllowHeaders:     corsConfig.AllowHeaders,
			ExposeHeaders:    corsConfig.ExposeHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAge,
		},
	)
}

// RateLimitMiddleware 令牌桶算法限流
func RateLimitMiddleware(rate int, interval time.Duration) app.HandlerFunc {
	limiter := NewTokenBucket(rate, interval)

	return func(c context.Context, ctx *app.RequestContext) {
		if !limiter.Allow() {
			hlog.CtxInfof(c, "[RATE LIMIT] path=%s", ctx.Path())
			ctx.AbortWithStatusJSON(429, map[string]interface{}{
				"code":    429001,
				"message": "too many requests",
			})
			return
		}
		ctx.Next(c)
	}
}

// 令牌桶实现
type TokenBucket struct {
	capacity int
	tokens   chan struct{}
	rate     time.Duration
}

func NewTokenBucket(rate int, interval time.Duration) *TokenBucket {
	tb := &TokenBucket{
		capacity: rate,
		tokens:   make(chan struct{}, rate),
		rate:     interval,
	}

	// 初始满桶，否则冷启动阶段必然拒绝请求
	for i := 0; i < rate; i++ {
		tb.tokens <- struct{}{}
	}

	// 定时器生产令牌
	go func() {
		ticker := time.NewTicker(tb.rate)
		for range ticker.C {
			select {
			case tb.tokens <- struct{}{}:
			default:
			}
		}
	}()
	return tb
}

func (tb *TokenBucket) Allow() bool {
	select {
	case <-tb.tokens:
		return true
	default:
		return false
	}
}

// SessionMiddleware 每个请求从前端会话 cookie 重新派生会话存储。
// cookie 里是签名 JWT，内载上游会话凭证；解析失败按匿名处理，不报错。
// 会话存储挂到请求上下文，后续闸门和处理器都从这里取。
func SessionMiddleware(cfg *config.SessionConfig, identity session.IdentityClient) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		store := session.NewStore(identity)

		if raw := string(ctx.Cookie(cfg.CookieName)); raw != "" {
			if upstreamCookie, ok := ParseSessionToken(cfg, raw); ok {
				store.Load(c, upstreamCookie)
			}
		}

		ctx.Set(sessionKey, store)
		ctx.Next(c)
	}
}

// GetSession 从请求上下文取会话存储。SessionMiddleware 之前调用会拿到匿名会话
func GetSession(ctx *app.RequestContext) *session.Store {
	if v, ok := ctx.Get(sessionKey); ok {
		if store, ok := v.(*session.Store); ok {
			return store
		}
	}
	return session.NewStore(nil)
}

// GateMiddleware 路由级授权闸门。
// 未登录访问需登录路由：401 并附带登录跳转；
// 已登录但级别不够：404，被保护的路由对其根本不存在。
func GateMiddleware(route authz.RouteClass) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		store := GetSession(ctx)
		if authz.Allows(store, route) {
			ctx.Next(c)
			return
		}

		if !store.IsAuthenticated() {
			ctx.AbortWithStatusJSON(401, utils.H{
				"message":  "authentication required",
				"redirect": "/login",
			})
			return
		}
		ctx.AbortWithStatusJSON(404, utils.H{"message": "not found"})
	}
}
