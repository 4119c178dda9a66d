package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	apperrors "board-front/pkg/common/errors"
	"board-front/pkg/core/board/model"
	"board-front/pkg/core/category"
	"board-front/pkg/core/upstream"
)

// Fetcher 帖子集合抓取器。每个操作都是一次请求/响应往返，
// 视图生命周期之外不保留任何本地缓存。
type Fetcher struct {
	up *upstream.Client
}

func NewFetcher(up *upstream.Client) *Fetcher {
	return &Fetcher{up: up}
}

// Draft 新帖提交载荷
type Draft struct {
	BoardTitle    string        `json:"boardTitle"`
	BoardWrite    string        `json:"boardWrite"`
	BoardCategory category.Code `json:"boardCategory"`
}

// Patch 编辑保存载荷（只允许改标题和正文）
type Patch struct {
	BoardTitle string `json:"boardTitle"`
	BoardWrite string `json:"boardWrite"`
}

// ListByCategory 拉取某分类范围内的帖子集合
func (f *Fetcher) ListByCategory(ctx context.Context, c category.Code) ([]model.Board, error) {
	res, err := f.up.Do(ctx, upstream.Call{
		Method: http.MethodGet,
		Path:   "/boards/category/" + category.Token(c),
	})
	if err != nil {
		return nil, err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return nil, err
	}
	var boards []model.Board
	if err := upstream.DecodeJSON(res.Body, &boards); err != nil {
		return nil, fmt.Errorf("decode board list: %w", err)
	}
	return boards, nil
}

// GetByNumber 单帖详情，上游返回非成功状态一律视为 NotFound
func (f *Fetcher) GetByNumber(ctx context.Context, number int64) (*model.Board, error) {
	res, err := f.up.Do(ctx, upstream.Call{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/boards/detail/%d", number),
	})
	if err != nil {
		return nil, err
	}
	if res.Status < 200 || res.Status >= 300 {
		return nil, apperrors.ErrNotFound
	}
	var board model.Board
	if err := upstream.DecodeJSON(res.Body, &board); err != nil {
		return nil, fmt.Errorf("decode board detail: %w", err)
	}
	return &board, nil
}

// ListByAuthor 某用户写过的全部帖子
func (f *Fetcher) ListByAuthor(ctx context.Context, userID string) ([]model.Board, error) {
	res, err := f.up.Do(ctx, upstream.Call{
		Method: http.MethodGet,
		Path:   "/boards/user/" + userID,
	})
	if err != nil {
		return nil, err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return nil, err
	}
	var boards []model.Board
	if err := upstream.DecodeJSON(res.Body, &boards); err != nil {
		return nil, fmt.Errorf("decode author board list: %w", err)
	}
	return boards, nil
}

// CountByAuthor 某用户的帖子数。上游返回裸整数字面量
func (f *Fetcher) CountByAuthor(ctx context.Context, userID string) (int, error) {
	res, err := f.up.Do(ctx, upstream.Call{
		Method: http.MethodGet,
		Path:   "/boards/count/" + userID,
	})
	if err != nil {
		return 0, err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return 0, err
	}
	return int(gjson.ParseBytes(res.Body).Int()), nil
}

// Create 发新帖（需要上游会话）
func (f *Fetcher) Create(ctx context.Context, cookie string, draft Draft) (*model.Board, error) {
	res, err := f.up.Do(ctx, upstream.Call{
		Method:   http.MethodPost,
		Path:     "/boards/create",
		Cookie:   cookie,
		JSONBody: draft,
	})
	if err != nil {
		return nil, err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return nil, err
	}
	var board model.Board
	if err := upstream.DecodeJSON(res.Body, &board); err != nil {
		return nil, fmt.Errorf("decode created board: %w", err)
	}
	return &board, nil
}

// Update 保存编辑。成功时以服务端返回的表示为准，草稿被丢弃
func (f *Fetcher) Update(ctx context.Context, cookie string, number int64, patch Patch) (*model.Board, error) {
	res, err := f.up.Do(ctx, upstream.Call{
		Method:   http.MethodPut,
		Path:     fmt.Sprintf("/boards/update/%d", number),
		Cookie:   cookie,
		JSONBody: patch,
	})
	if err != nil {
		return nil, err
	}
	if err := apperrors.FromStatus(res.Status); err != nil {
		return nil, err
	}
	var board model.Board
	if err := upstream.DecodeJSON(res.Body, &board); err != nil {
		return nil, fmt.Errorf("decode updated board: %w", err)
	}
	return &board, nil
}

// Delete 删除帖子
func (f *Fetcher) Delete(ctx context.Context, cookie string, number int64) error {
	res, err := f.up.Do(ctx, upstream.Call{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/boards/delete/%d", number),
		Cookie: cookie,
	})
	if err != nil {
		return err
	}
	return apperrors.FromStatus(res.Status)
}
