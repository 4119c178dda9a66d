// ----------- pkg/web/handler/admin_handler.go -----------
package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	userclient "board-front/pkg/core/user/client"
	"board-front/pkg/core/user/console"
	usermodel "board-front/pkg/core/user/model"
	"board-front/pkg/web/middleware"
	"board-front/pkg/web/model"
)

// AdminHandler 用户管理台。整组路由在路由层挂管理员闸门，
// 这里不重复比较等级数字
type AdminHandler struct {
	Users *userclient.Client
}

func NewAdminHandler(users *userclient.Client) *AdminHandler {
	return &AdminHandler{Users: users}
}

// ListUsers 用户列表：搜索 + 分页（管理台页码从 1 起）
func (h *AdminHandler) ListUsers(ctx context.Context, c *app.RequestContext) {
	sess := middleware.GetSession(c)

	users, err := h.Users.ListUsers(ctx, sess.UpstreamCookie())
	if err != nil {
		respondError(c, err)
		return
	}

	currentPage, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	page := console.BuildPage(users, c.Query("search"), currentPage)

	c.JSON(200, utils.H{
		"rows":        page.Rows,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"hasPrev":     page.HasPrev,
		"hasNext":     page.HasNext,
	})
}

// UpdateUser 管理员整体更新某用户，等级 1~4 的前置校验在客户端层完成
func (h *AdminHandler) UpdateUser(ctx context.Context, c *app.RequestContext) {
	userID := c.Param("id")

	var req model.AdminUserReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"message": "invalid request"})
		return
	}

	sess := middleware.GetSession(c)
	updated, err := h.Users.AdminUpdate(ctx, sess.UpstreamCookie(), usermodel.User{
		UserID:       userID,
		UserName:     req.Name,
		UserNickname: req.Nickname,
		UserPassword: req.Password,
		UserLevel:    req.Level,
	})
	if err != nil {
		respondValidation(c, err)
		return
	}
	c.JSON(200, model.NewUserRes(updated))
}

// DeleteUser 管理员删除用户
func (h *AdminHandler) DeleteUser(ctx context.Context, c *app.RequestContext) {
	sess := middleware.GetSession(c)
	if err := h.Users.DeleteUser(ctx, sess.UpstreamCookie(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, utils.H{"message": "deleted"})
}
