package main

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"

	"board-front/pkg/common/config"
	boardclient "board-front/pkg/core/board/client"
	"board-front/pkg/core/category"
	"board-front/pkg/core/upstream"
	userclient "board-front/pkg/core/user/client"
	"board-front/pkg/web/router"
)

func main() {
	// 初始化配置
	cfg := config.Load()

	// 初始化上游客户端
	up, err := upstream.New(
		cfg.Upstream.BaseURL,
		time.Duration(cfg.Upstream.DialTimeout)*time.Second,
		time.Duration(cfg.Upstream.ReadTimeout)*time.Second,
	)
	if err != nil {
		panic("Failed to initialize upstream client: " + err.Error())
	}

	users := userclient.New(up)
	boards := boardclient.NewFetcher(up)

	// 创建Hertz实例
	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)

	// 注册路由
	router.RegisterAPIs(h, cfg, router.Deps{
		Users:  users,
		Boards: boards,
		UpstreamCheck: func(ctx context.Context) error {
			_, err := boards.ListByCategory(ctx, category.Notice)
			return err
		},
	})

	// 启动服务
	h.Spin()
}
