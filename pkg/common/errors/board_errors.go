// pkg/common/errors/board_errors.go

package errors

import (
	"errors"
	"fmt"
)

// 错误分类学：每一类对应前端的一种固定处置方式，
// 所有失败都在发起请求的组件就地处理，不向视图之外传播
var (
	ErrUnauthenticated = errors.New("authentication required") // 401 -> 跳转登录
	ErrBadRequest      = errors.New("invalid request")         // 400 -> 就地提示
	ErrNotFound        = errors.New("no data")                 // 缺失 -> "无数据"状态
	ErrNetwork         = errors.New("upstream unreachable")    // 网络失败 -> 本地提示，不重试
	ErrValidation      = errors.New("validation failed")       // 客户端前置校验 -> 阻止提交
)

// NewValidation 带具体原因的校验错误
func NewValidation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
