package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	apperrors "board-front/pkg/common/errors"
	"board-front/pkg/core/user/model"
	"board-front/pkg/core/upstream"
)

// Client 用户侧上游客户端：会话身份、注册、资料维护与管理台操作
type Client struct {
	up *upstream.Client
}

func New(up *upstream.Client) *Client {
	return &Client{up: up}
}

// CurrentUser 携带上游会话 cookie 请求当前身份。
// 401 映射为 ErrUnauthenticated（"未登录"是正常答案，不是故障）
func (c *Client) CurrentUser(ctx context.Context, upstreamCookie string) (*model.User, error) {
	res, err := c.up.Do(ctx, upstream.Call{
		Method: http.MethodGet,
		Path:   "/users/current-user",
		Cookie: upstreamCookie,
	})
	if err != nil {
		return nil, err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return nil, err
	}
	var user model.User
	if err := upstream.DecodeJSON(res.Body, &user); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	return &user, nil
}

// Login 登录交换。成功时返回上游下发的会话 cookie
func (c *Client) Login(ctx context.Context, userID, password string) (cookie string, err error) {
	res, err := c.up.Do(ctx, upstream.Call{
		Method: http.MethodPost,
		Path:   "/users/login",
		JSONBody: map[string]string{
			"userId":       userID,
			"userPassword": password,
		},
	})
	if err != nil {
		return "", err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return "", err
	}
	return res.SetCookie, nil
}

// Logout 终止上游会话
func (c *Client) Logout(ctx context.Context, upstreamCookie string) error {
	res, err := c.up.Do(ctx, upstream.Call{
		Method: http.MethodPost,
		Path:   "/users/logout",
		Cookie: upstreamCookie,
	})
	if err != nil {
		return err
	}
	return apperrors.FromStatus(res.Status)
}

// RegisterForm 注册表单
type RegisterForm struct {
	UserID       string `json:"userId"`
	UserPassword string `json:"userPassword"`
	UserName     string `json:"userName"`
	UserNickname string `json:"userNickname"`
}

// ValidateRegister 提交前的客户端前置校验，失败时不发出任何请求。
// 规则与原表单一致：两次密码一致、账号长度 6~20
func ValidateRegister(form RegisterForm, rePassword string) error {
	if form.UserPassword != rePassword {
		return apperrors.NewValidation("passwords do not match")
	}
	if len(form.UserID) < 6 || len(form.UserID) > 20 {
		return apperrors.NewValidation("user id must be 6-20 characters")
	}
	return nil
}

// Register 注册
func (c *Client) Register(ctx context.Context, form RegisterForm) error {
	res, err := c.up.Do(ctx, upstream.Call{
		Method:   http.MethodPost,
		Path:     "/users/register",
		JSONBody: form,
	})
	if err != nil {
		return err
	}
	return apperrors.FromStatus(res.Status)
}

// CheckDuplicate 注册前的重名预检。field 取 "userId" 或 "userNickname"，
// 响应里 userIdExists / nicknameExists 均为可选字段，用 gjson 宽容提取
func (c *Client) CheckDuplicate(ctx context.Context, field, value string) (exists bool, err error) {
	res, err := c.up.Do(ctx, upstream.Call{
		Method:   http.MethodPost,
		Path:     "/users/check-duplicate",
		JSONBody: map[string]string{field: value},
	})
	if err != nil {
		return false, err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return false, err
	}
	body := gjson.ParseBytes(res.Body)
	return body.Get("userIdExists").Bool() || body.Get("nicknameExists").Bool(), nil
}

// ProfileUpdate 资料更新载荷：显式枚举会被传输的字段，
// 取代原系统里动态拼 FormData 的做法
type ProfileUpdate struct {
	Nickname  string
	Name      string
	Password  string
	Level     int
	Image     []byte // 为空则不上传
	ImageName string
}

// UpdateProfile 以 multipart 形式提交资料更新
func (c *Client) UpdateProfile(ctx context.Context, upstreamCookie, userID string, p ProfileUpdate) error {
	form := &upstream.MultipartForm{
		Fields: map[string]string{
			"userNickname": p.Nickname,
			"userName":     p.Name,
			"userPassword": p.Password,
			"userLevel":    strconv.Itoa(p.Level),
		},
	}
	if len(p.Image) > 0 {
		form.FileField = "profileImage"
		form.FileName = p.ImageName
		form.FileData = p.Image
	}

	res, err := c.up.Do(ctx, upstream.Call{
		Method: http.MethodPut,
		Path:   "/users/" + userID,
		Cookie: upstreamCookie,
		Files:  form,
	})
	if err != nil {
		return err
	}
	return apperrors.FromStatus(res.Status)
}

// ListUsers 管理台：全量用户列表
func (c *Client) ListUsers(ctx context.Context, upstreamCookie string) ([]model.User, error) {
	res, err := c.up.Do(ctx, upstream.Call{
		Method: http.MethodGet,
		Path:   "/users",
		Cookie: upstreamCookie,
	})
	if err != nil {
		return nil, err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return nil, err
	}
	var users []model.User
	if err := upstream.DecodeJSON(res.Body, &users); err != nil {
		return nil, fmt.Errorf("decode user list: %w", err)
	}
	return users, nil
}

// AdminUpdate 管理台：整体更新某个用户（含等级），等级必须先过前置校验
func (c *Client) AdminUpdate(ctx context.Context, upstreamCookie string, user model.User) (*model.User, error) {
	if !model.ValidLevel(user.UserLevel) {
		return nil, apperrors.NewValidation("level must be between 1 and 4")
	}
	res, err := c.up.Do(ctx, upstream.Call{
		Method:   http.MethodPut,
		Path:     "/users/admin/" + user.UserID,
		Cookie:   upstreamCookie,
		JSONBody: user,
	})
	if err != nil {
		return nil, err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return nil, err
	}
	var updated model.User
	if err := upstream.DecodeJSON(res.Body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated user: %w", err)
	}
	return &updated, nil
}

// DeleteUser 管理台：删除用户
func (c *Client) DeleteUser(ctx context.Context, upstreamCookie, userID string) error {
	res, err := c.up.Do(ctx, upstream.Call{
		Method: http.MethodDelete,
		Path:   "/users/delete/" + userID,
		Cookie: upstreamCookie,
	})
	if err != nil {
		return err
	}
	return apperrors.FromStatus(res.Status)
}

// FindID 凭昵称找回账号。上游返回的是给用户看的提示文本，原样转交；
// 404 表示查无此昵称
func (c *Client) FindID(ctx context.Context, nickname string) (string, error) {
	return c.findLookup(ctx, "/users/find-id", url.Values{"nickname": {nickname}})
}

// FindPassword 凭昵称和账号找回密码提示文本
func (c *Client) FindPassword(ctx context.Context, nickname, userID string) (string, error) {
	return c.findLookup(ctx, "/users/find-password", url.Values{
		"nickname": {nickname},
		"userId":   {userID},
	})
}

func (c *Client) findLookup(ctx context.Context, path string, form url.Values) (string, error) {
	res, err := c.up.Do(ctx, upstream.Call{
		Method:   http.MethodPost,
		Path:     path,
		FormBody: form,
	})
	if err != nil {
		return "", err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return "", err
	}
	return string(res.Body), nil
}
