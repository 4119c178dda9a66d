// ----------- pkg/web/handler/board_handler.go -----------
package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	apperrors "board-front/pkg/common/errors"
	"board-front/pkg/core/authz"
	boardclient "board-front/pkg/core/board/client"
	"board-front/pkg/core/board/detail"
	"board-front/pkg/core/board/listview"
	"board-front/pkg/core/category"
	"board-front/pkg/core/session"
	"board-front/pkg/web/middleware"
	"board-front/pkg/web/model"
)

type BoardHandler struct {
	Boards *boardclient.Fetcher
}

func NewBoardHandler(boards *boardclient.Fetcher) *BoardHandler {
	return &BoardHandler{Boards: boards}
}

// pageIndexParam 解析 page 查询参数。非数字或负数按错误请求处理
func pageIndexParam(c *app.RequestContext) (int, error) {
	idx, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || idx < 0 {
		return 0, apperrors.ErrBadRequest
	}
	return idx, nil
}

// List 分类列表视图：抓取 -> 流水线 -> 一页行
func (h *BoardHandler) List(ctx context.Context, c *app.RequestContext) {
	scope := category.FromToken(c.Param("token"))
	pageIndex, err := pageIndexParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	view := listview.NewView(h.Boards)
	defer view.Close()

	if err := view.SetCategory(ctx, scope); err != nil {
		respondError(c, err)
		return
	}
	view.SetSearch(c.Query("search"))
	view.SetPage(pageIndex)

	c.JSON(200, model.NewBoardListRes(scope, view.Page()))
}

// Detail 详情视图。canModify 每次都对活跃会话现算
func (h *BoardHandler) Detail(ctx context.Context, c *app.RequestContext) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		respondError(c, apperrors.ErrBadRequest)
		return
	}

	sess := middleware.GetSession(c)
	ctrl := detail.NewController(h.Boards, sess, number)
	defer ctrl.Close()

	if err := ctrl.Load(ctx); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, model.NewBoardDetailRes(ctrl.Board(), ctrl.CanModify()))
}

// Create 发帖。分类必须是闭集内的真实分类，不能是 all 伪分类
func (h *BoardHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req model.CreatePostReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"message": "invalid request"})
		return
	}

	cat := category.FromToken(req.Category)
	if cat == category.All {
		c.JSON(400, utils.H{"message": "invalid category"})
		return
	}

	sess := middleware.GetSession(c)
	board, err := h.Boards.Create(ctx, sess.UpstreamCookie(), boardclient.Draft{
		BoardTitle:    req.Title,
		BoardWrite:    req.Body,
		BoardCategory: cat,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, model.NewBoardDetailRes(board, authz.CanModify(sess, board)))
}

// Update 编辑保存：详情控制器走 Viewing -> Editing -> Saving 一整圈。
// 成功返回服务端权威表示；失败时草稿在控制器里原样保留
func (h *BoardHandler) Update(ctx context.Context, c *app.RequestContext) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		respondError(c, apperrors.ErrBadRequest)
		return
	}

	var req model.UpdatePostReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"message": "invalid request"})
		return
	}

	sess := middleware.GetSession(c)
	ctrl := detail.NewController(h.Boards, sess, number)
	defer ctrl.Close()

	if err := ctrl.Load(ctx); err != nil {
		respondError(c, err)
		return
	}
	if err := ctrl.Edit(); err != nil {
		respondAuthz(c, sess, err)
		return
	}
	if err := ctrl.SetDraft(detail.Draft{Title: req.Title, Body: req.Body}); err != nil {
		respondError(c, apperrors.ErrBadRequest)
		return
	}
	if err := ctrl.Save(ctx); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, model.NewBoardDetailRes(ctrl.Board(), ctrl.CanModify()))
}

// Delete 删除。必须带 confirm=true 显式确认，缺确认不发任何上游请求
func (h *BoardHandler) Delete(ctx context.Context, c *app.RequestContext) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		respondError(c, apperrors.ErrBadRequest)
		return
	}
	confirmed := c.Query("confirm") == "true"

	sess := middleware.GetSession(c)
	ctrl := detail.NewController(h.Boards, sess, number)
	defer ctrl.Close()

	if err := ctrl.Load(ctx); err != nil {
		respondError(c, err)
		return
	}
	if err := ctrl.Delete(ctx, confirmed); err != nil {
		if errors.Is(err, detail.ErrNotConfirmed) {
			c.JSON(400, utils.H{"message": "delete requires confirmation"})
			return
		}
		respondAuthz(c, sess, err)
		return
	}
	// 成功后前端离开详情视图
	c.JSON(200, utils.H{"message": "deleted", "redirect": "/boards/category/all"})
}

// MyPosts 我的帖子：作者范围的集合走同一条流水线
func (h *BoardHandler) MyPosts(ctx context.Context, c *app.RequestContext) {
	sess := middleware.GetSession(c)
	current := sess.Current()

	boards, err := h.Boards.ListByAuthor(ctx, current.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	pageIndex, err := pageIndexParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page := listview.BuildPage(boards, listview.Query{
		SearchTerm: c.Query("search"),
		PageIndex:  pageIndex,
	})
	c.JSON(200, model.NewBoardListRes(category.All, page))
}

// respondAuthz 动作级授权失败与状态机误用的统一出口。
// 匿名用户按未认证处理（跳转登录），已登录但无权按隐藏控件处理
func respondAuthz(c *app.RequestContext, sess *session.Store, err error) {
	switch {
	case errors.Is(err, detail.ErrNotAuthorized) && !sess.IsAuthenticated():
		c.JSON(401, utils.H{"message": "authentication required", "redirect": "/login"})
	case errors.Is(err, detail.ErrNotAuthorized):
		c.JSON(403, utils.H{"message": "not allowed"})
	case errors.Is(err, detail.ErrBadTransition):
		c.JSON(409, utils.H{"message": "conflicting edit state"})
	default:
		respondError(c, err)
	}
}
