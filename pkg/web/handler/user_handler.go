// ----------- pkg/web/handler/user_handler.go -----------
package handler

import (
	"context"
	"errors"
	"io"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol"

	"board-front/pkg/common/config"
	apperrors "board-front/pkg/common/errors"
	"board-front/pkg/core/authz"
	boardclient "board-front/pkg/core/board/client"
	"board-front/pkg/core/session"
	userclient "board-front/pkg/core/user/client"
	"board-front/pkg/web/middleware"
	"board-front/pkg/web/model"
)

type UserHandler struct {
	Users      *userclient.Client
	Boards     *boardclient.Fetcher
	SessionCfg *config.SessionConfig
}

func NewUserHandler(users *userclient.Client, boards *boardclient.Fetcher, sessionCfg *config.SessionConfig) *UserHandler {
	return &UserHandler{Users: users, Boards: boards, SessionCfg: sessionCfg}
}

// Login 登录交换：凭证给上游验证，拿到上游会话凭证后装入前端会话令牌。
// 本服务自己不做任何密码校验
func (h *UserHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req model.LoginReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"message": "invalid request"})
		return
	}

	upstreamCookie, err := h.Users.Login(ctx, req.UserID, req.Password)
	if err != nil {
		if apperrors.IsUnauthenticated(err) {
			c.JSON(401, utils.H{"message": "wrong id or password"})
			return
		}
		respondError(c, err)
		return
	}

	user, err := h.Users.CurrentUser(ctx, upstreamCookie)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	sess.Login(user, upstreamCookie)

	token, err := middleware.IssueSessionToken(h.SessionCfg, user.UserID, upstreamCookie)
	if err != nil {
		c.JSON(500, utils.H{"message": "request failed"})
		return
	}
	c.SetCookie(h.SessionCfg.CookieName, token,
		int(h.SessionCfg.ExpireDuration.Seconds()),
		"/", "", protocol.CookieSameSiteLaxMode, false, true)

	c.JSON(200, h.sessionRes(ctx, sess))
}

// Logout 上游登出失败也必须清掉本地会话，避免界面卡在已登录
func (h *UserHandler) Logout(ctx context.Context, c *app.RequestContext) {
	sess := middleware.GetSession(c)
	if err := sess.Logout(ctx); err != nil {
		hlog.CtxWarnf(ctx, "upstream logout failed: %v", err)
	}

	c.SetCookie(h.SessionCfg.CookieName, "", -1,
		"/", "", protocol.CookieSameSiteLaxMode, false, true)
	c.JSON(200, utils.H{"message": "logged out", "redirect": "/login"})
}

// Me 顶层挂载时的会话视图：当前用户、可导航路由集、发帖数
func (h *UserHandler) Me(ctx context.Context, c *app.RequestContext) {
	sess := middleware.GetSession(c)
	if err := sess.Err(); err != nil {
		hlog.CtxWarnf(ctx, "session derivation degraded: %v", err)
	}
	c.JSON(200, h.sessionRes(ctx, sess))
}

func (h *UserHandler) sessionRes(ctx context.Context, sess *session.Store) model.SessionRes {
	current := sess.Current()
	postCount := 0
	if current != nil {
		count, err := h.Boards.CountByAuthor(ctx, current.UserID)
		if err != nil {
			hlog.CtxWarnf(ctx, "post count fetch failed: %v", err)
		} else {
			postCount = count
		}
	}
	return model.NewSessionRes(current, authz.NavigableRoutes(sess), postCount)
}

// Register 注册：先过客户端前置校验和重名预检，都不触发上游写入
func (h *UserHandler) Register(ctx context.Context, c *app.RequestContext) {
	var req model.RegisterReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"message": "invalid request"})
		return
	}

	form := userclient.RegisterForm{
		UserID:       req.UserID,
		UserPassword: req.Password,
		UserName:     req.Name,
		UserNickname: req.Nickname,
	}
	if err := userclient.ValidateRegister(form, req.RePassword); err != nil {
		respondValidation(c, err)
		return
	}

	// 检查账号重复
	if exists, err := h.Users.CheckDuplicate(ctx, "userId", req.UserID); err != nil {
		respondError(c, err)
		return
	} else if exists {
		c.JSON(409, utils.H{"message": "user id already taken"})
		return
	}

	// 检查昵称重复
	if exists, err := h.Users.CheckDuplicate(ctx, "userNickname", req.Nickname); err != nil {
		respondError(c, err)
		return
	} else if exists {
		c.JSON(409, utils.H{"message": "nickname already taken"})
		return
	}

	if err := h.Users.Register(ctx, form); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, utils.H{"message": "registered"})
}

// CheckDuplicate 注册表单的实时重名预检
func (h *UserHandler) CheckDuplicate(ctx context.Context, c *app.RequestContext) {
	var req model.CheckDuplicateReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"message": "invalid request"})
		return
	}
	if req.Field != "userId" && req.Field != "userNickname" {
		c.JSON(400, utils.H{"message": "invalid request"})
		return
	}

	exists, err := h.Users.CheckDuplicate(ctx, req.Field, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, utils.H{"exists": exists})
}

// UpdateProfile 资料更新。multipart 字段固定枚举：昵称、姓名、密码、头像。
// 等级沿用当前会话用户的值，资料编辑面不允许改等级
func (h *UserHandler) UpdateProfile(ctx context.Context, c *app.RequestContext) {
	sess := middleware.GetSession(c)
	current := sess.Current()

	password := c.PostForm("password")
	if password != c.PostForm("confirmPassword") {
		c.JSON(400, utils.H{"message": "passwords do not match"})
		return
	}

	update := userclient.ProfileUpdate{
		Nickname: c.PostForm("nickname"),
		Name:     c.PostForm("name"),
		Password: password,
		Level:    current.UserLevel,
	}
	if fh, err := c.FormFile("profileImage"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(400, utils.H{"message": "invalid request"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(400, utils.H{"message": "invalid request"})
			return
		}
		update.Image = data
		update.ImageName = fh.Filename
	}

	if err := h.Users.UpdateProfile(ctx, sess.UpstreamCookie(), current.UserID, update); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, utils.H{"message": "profile updated"})
}

// FindID 凭昵称找回账号，上游的提示文本原样转交
func (h *UserHandler) FindID(ctx context.Context, c *app.RequestContext) {
	var req model.FindIDReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"message": "invalid request"})
		return
	}
	message, err := h.Users.FindID(ctx, req.Nickname)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, utils.H{"message": message})
}

// FindPassword 凭昵称和账号找回密码提示
func (h *UserHandler) FindPassword(ctx context.Context, c *app.RequestContext) {
	var req model.FindPasswordReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"message": "invalid request"})
		return
	}
	message, err := h.Users.FindPassword(ctx, req.Nickname, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, utils.H{"message": message})
}

// 统一错误响应方法：错误学分类 -> 前端处置
//   - 401 跳转登录；400 就地通用提示；404 无数据状态；其余通用失败提示
func respondError(c *app.RequestContext, err error) {
	switch status := apperrors.StatusOf(err); status {
	case 401:
		c.JSON(401, utils.H{"message": "authentication required", "redirect": "/login"})
	case 400:
		c.JSON(400, utils.H{"message": "invalid request"})
	case 404:
		c.JSON(404, utils.H{"message": "no data"})
	default:
		c.JSON(status, utils.H{"message": "request failed"})
	}
}

// respondValidation 前置校验失败带具体原因，帮助用户改对表单
func respondValidation(c *app.RequestContext, err error) {
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(400, utils.H{"message": err.Error()})
		return
	}
	respondError(c, err)
}
