package model

import (
	"strings"
	"time"

	"board-front/pkg/core/category"
	usermodel "board-front/pkg/core/user/model"
)

// Board 上游帖子记录，字段名与上游 JSON 一致
type Board struct {
	BoardNumber   int64           `json:"boardNumber"`
	BoardCategory category.Code   `json:"boardCategory"`
	BoardTitle    string          `json:"boardTitle"`
	BoardWrite    string          `json:"boardWrite"`
	User          *usermodel.User `json:"user"` // 作者弱引用，作者记录缺失时为 nil
	CreatedDate   Time            `json:"createdDate"`
	UpdatedDate   Time            `json:"updatedDate"`
}

func (b *Board) IsNotice() bool {
	return b.BoardCategory == category.Notice
}

// AuthorID 作者 id，作者缺失时返回空串（空串永远不等于任何登录用户）
func (b *Board) AuthorID() string {
	if b.User == nil {
		return ""
	}
	return b.User.UserID
}

// Time 上游时间戳。上游是 Java LocalDateTime，序列化可能不带时区偏移，
// 标准 time.Time 解析会失败，这里做兼容解析，输出统一 RFC3339。
type Time struct {
	time.Time
}

const localDateTimeLayout = "2006-01-02T15:04:05"

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(localDateTimeLayout, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.Time.Format(time.RFC3339) + `"`), nil
}
