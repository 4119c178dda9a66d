package model

import (
	"board-front/pkg/core/board/listview"
	boardmodel "board-front/pkg/core/board/model"
	"board-front/pkg/core/category"
)

// 请求/响应数据结构
type (
	CreatePostReq struct {
		Title    string `json:"title" binding:"required"`
		Body     string `json:"body" binding:"required"`
		Category string `json:"category" binding:"required"` // URL token: free / questions / notice
	}

	UpdatePostReq struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}

	// BoardRow 列表里的一行
	BoardRow struct {
		Number       int64  `json:"number"`
		Category     string `json:"category"`
		CategoryName string `json:"categoryName"`
		Title        string `json:"title"`
		Preview      string `json:"preview"` // 正文截断预览
		Author       string `json:"author,omitempty"`
		UpdatedDate  string `json:"updatedDate"`
		Notice       bool   `json:"notice"`
	}

	BoardListRes struct {
		Category     string     `json:"category"`
		CategoryName string     `json:"categoryName"`
		Rows         []BoardRow `json:"rows"`
		PageIndex    int        `json:"pageIndex"`
		TotalPages   int        `json:"totalPages"`
		HasPrev      bool       `json:"hasPrev"`
		HasNext      bool       `json:"hasNext"`
		NoPosts      bool       `json:"noPosts"` // 范围内没有任何帖子，渲染固定指示
	}

	BoardDetailRes struct {
		Number       int64  `json:"number"`
		Category     string `json:"category"`
		CategoryName string `json:"categoryName"`
		Title        string `json:"title"`
		Body         string `json:"body"`
		Author       string `json:"author,omitempty"`
		CreatedDate  string `json:"createdDate"`
		UpdatedDate  string `json:"updatedDate"`
		CanModify    bool   `json:"canModify"` // 编辑/删除入口是否出现
	}
)

const previewRunes = 10

// NewBoardRow 帖子 -> 列表行
func NewBoardRow(b *boardmodel.Board) BoardRow {
	author := ""
	if b.User != nil {
		author = b.User.UserNickname
	}
	return BoardRow{
		Number:       b.BoardNumber,
		Category:     category.Token(b.BoardCategory),
		CategoryName: category.DisplayName(b.BoardCategory),
		Title:        b.BoardTitle,
		Preview:      preview(b.BoardWrite),
		Author:       author,
		UpdatedDate:  b.UpdatedDate.Format("2006-01-02 15:04:05"),
		Notice:       b.IsNotice(),
	}
}

// NewBoardListRes 一页流水线结果 -> 列表响应
func NewBoardListRes(scope category.Code, page listview.Page) BoardListRes {
	rows := make([]BoardRow, 0, len(page.Rows))
	for i := range page.Rows {
		rows = append(rows, NewBoardRow(&page.Rows[i]))
	}
	return BoardListRes{
		Category:     category.Token(scope),
		CategoryName: category.DisplayName(scope),
		Rows:         rows,
		PageIndex:    page.PageIndex,
		TotalPages:   page.TotalPages,
		HasPrev:      page.HasPrev,
		HasNext:      page.HasNext,
		NoPosts:      page.NoPosts,
	}
}

// NewBoardDetailRes 帖子 -> 详情响应，canModify 由调用方对活跃会话求值
func NewBoardDetailRes(b *boardmodel.Board, canModify bool) BoardDetailRes {
	author := ""
	if b.User != nil {
		author = b.User.UserNickname
	}
	return BoardDetailRes{
		Number:       b.BoardNumber,
		Category:     category.Token(b.BoardCategory),
		CategoryName: category.DisplayName(b.BoardCategory),
		Title:        b.BoardTitle,
		Body:         b.BoardWrite,
		Author:       author,
		CreatedDate:  b.CreatedDate.Format("2006-01-02 15:04:05"),
		UpdatedDate:  b.UpdatedDate.Format("2006-01-02 15:04:05"),
		CanModify:    canModify,
	}
}

func preview(body string) string {
	runes := []rune(body)
	if len(runes) <= previewRunes {
		return body
	}
	return string(runes[:previewRunes]) + "..."
}
