package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app/server"

	"board-front/pkg/common/config"
	"board-front/pkg/core/authz"
	boardclient "board-front/pkg/core/board/client"
	userclient "board-front/pkg/core/user/client"
	"board-front/pkg/web/handler"
	"board-front/pkg/web/middleware"
)

// Deps 路由层的外部依赖
type Deps struct {
	Users  *userclient.Client
	Boards *boardclient.Fetcher
	// UpstreamCheck 健康检查的上游探测，可为 nil
	UpstreamCheck func(ctx context.Context) error
}

// RegisterAPIs 注册所有API路由
func RegisterAPIs(h *server.Hertz, cfg *config.Config, deps Deps) {
	// 初始化Handler实例
	healthHandler := handler.NewHealthCheckHandler(deps.UpstreamCheck)
	userHandler := handler.NewUserHandler(deps.Users, deps.Boards, &cfg.Session)
	boardHandler := handler.NewBoardHandler(deps.Boards)
	adminHandler := handler.NewAdminHandler(deps.Users)

	// 注册全局中间件（按执行顺序）
	h.Use(
		middleware.RecoveryMiddleware(cfg),
		middleware.RequestIDMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.CORSMiddleware(cfg.Middleware.CORS),
		middleware.RateLimitMiddleware(
			cfg.Middleware.RateLimit.Rate,
			cfg.Middleware.RateLimit.Interval,
		),
		middleware.SessionMiddleware(&cfg.Session, deps.Users),
	)

	// 基础接口组
	h.GET("/health", healthHandler.AdvancedHealthCheck)

	// 业务接口组
	apiGroup := h.Group("/api/v1")
	{
		// 会话相关接口
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", userHandler.Login)
			authGroup.POST("/logout", userHandler.Logout)
			authGroup.GET("/me", userHandler.Me)
		}

		// 用户相关接口
		userGroup := apiGroup.Group("/users")
		{
			userGroup.POST("/register", userHandler.Register)
			userGroup.POST("/check-duplicate", userHandler.CheckDuplicate)
			userGroup.POST("/find-id", userHandler.FindID)
			userGroup.POST("/find-password", userHandler.FindPassword)

			// 需要身份认证的接口
			userGroup.PUT("/profile",
				middleware.GateMiddleware(authz.RouteProfileEdit),
				userHandler.UpdateProfile)
		}

		// 帖子相关接口。列表/详情公开；编辑和删除是动作级授权，
		// 由详情控制器对活跃会话逐次求值，不在路由层拦
		boardGroup := apiGroup.Group("/boards")
		{
			boardGroup.GET("/category/:token", boardHandler.List)
			boardGroup.GET("/detail/:number", boardHandler.Detail)
			boardGroup.POST("",
				middleware.GateMiddleware(authz.RouteCompose),
				boardHandler.Create)
			boardGroup.PUT("/:number", boardHandler.Update)
			boardGroup.DELETE("/:number", boardHandler.Delete)
		}

		apiGroup.GET("/my-posts",
			middleware.GateMiddleware(authz.RouteMyPosts),
			boardHandler.MyPosts)

		// 管理台：整组挂管理员闸门，级别不够的会话看不到这些路由
		adminGroup := apiGroup.Group("/admin", middleware.GateMiddleware(authz.RouteUserConsole))
		{
			adminGroup.GET("/users", adminHandler.ListUsers)
			adminGroup.PUT("/users/:id", adminHandler.UpdateUser)
			adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}
}
