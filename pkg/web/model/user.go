package model

import (
	"board-front/pkg/core/authz"
	usermodel "board-front/pkg/core/user/model"
)

// 请求/响应数据结构
type (
	LoginReq struct {
		UserID   string `json:"userId" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	RegisterReq struct {
		UserID     string `json:"userId" binding:"required"`
		Password   string `json:"password" binding:"required"`
		RePassword string `json:"rePassword" binding:"required"`
		Name       string `json:"name" binding:"required"`
		Nickname   string `json:"nickname" binding:"required"`
	}

	CheckDuplicateReq struct {
		Field string `json:"field" binding:"required"` // userId 或 userNickname
		Value string `json:"value" binding:"required"`
	}

	FindIDReq struct {
		Nickname string `json:"nickname" binding:"required"`
	}

	FindPasswordReq struct {
		Nickname string `json:"nickname" binding:"required"`
		UserID   string `json:"userId" binding:"required"`
	}

	AdminUserReq struct {
		Nickname string `json:"nickname" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Level    int    `json:"level" binding:"required"`
		Password string `json:"password"`
	}

	// UserRes 对浏览器暴露的用户视图，凭证字段永不出现
	UserRes struct {
		UserID   string `json:"userId"`
		Name     string `json:"name"`
		Nickname string `json:"nickname"`
		Image    string `json:"image,omitempty"`
		Level    int    `json:"level"`
		IsAdmin  bool   `json:"isAdmin"`
	}

	// SessionRes 会话视图：用户 + 该会话可导航的路由集
	SessionRes struct {
		Authenticated bool     `json:"authenticated"`
		User          *UserRes `json:"user,omitempty"`
		Routes        []string `json:"routes"`
		PostCount     int      `json:"postCount,omitempty"`
	}
)

// NewUserRes 上游用户 -> 浏览器视图
func NewUserRes(u *usermodel.User) *UserRes {
	if u == nil {
		return nil
	}
	return &UserRes{
		UserID:   u.UserID,
		Name:     u.UserName,
		Nickname: u.UserNickname,
		Image:    u.UserImage,
		Level:    u.UserLevel,
		IsAdmin:  u.IsAdmin(),
	}
}

// NewSessionRes 会话响应，路由集来自授权闸门
func NewSessionRes(u *usermodel.User, routes []authz.RouteClass, postCount int) SessionRes {
	names := make([]string, 0, len(routes))
	for _, r := range routes {
		names = append(names, string(r))
	}
	return SessionRes{
		Authenticated: u != nil,
		User:          NewUserRes(u),
		Routes:        names,
		PostCount:     postCount,
	}
}
