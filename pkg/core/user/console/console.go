package console

import (
	"strings"

	"board-front/pkg/core/user/model"
)

// 管理台用户列表的视图模型。与帖子列表不同：搜索不区分大小写、
// 覆盖昵称/姓名/账号三个字段，页码从 1 开始。

const PageSize = 10

// Row 管理台表格一行。存储的密码值不进入视图模型：
// 原系统把可解读的密码直接摆在管理表格里，这里不复刻
type Row struct {
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	UserNickname string `json:"userNickname"`
	UserImage    string `json:"userImage,omitempty"`
	UserLevel    int    `json:"userLevel"`
}

// Page 管理台一页
type Page struct {
	Rows        []Row
	CurrentPage int // 1 起始
	TotalPages  int
	HasPrev     bool
	HasNext     bool
}

// BuildPage 过滤 + 分页。昵称、姓名或账号包含搜索词即保留（大小写不敏感）
func BuildPage(users []model.User, searchTerm string, currentPage int) Page {
	term := strings.ToLower(searchTerm)

	var rows []Row
	for _, u := range users {
		if term != "" &&
			!strings.Contains(strings.ToLower(u.UserNickname), term) &&
			!strings.Contains(strings.ToLower(u.UserName), term) &&
			!strings.Contains(strings.ToLower(u.UserID), term) {
			continue
		}
		rows = append(rows, Row{
			UserID:       u.UserID,
			UserName:     u.UserName,
			UserNickname: u.UserNickname,
			UserImage:    u.UserImage,
			UserLevel:    u.UserLevel,
		})
	}

	totalPages := (len(rows) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}

	start := (currentPage - 1) * PageSize
	end := start + PageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	return Page{
		Rows:        rows[start:end],
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}
