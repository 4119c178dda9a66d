package errors

import (
	"errors"
	"fmt"
)

// region 错误处理工具函数

// FromStatus 将上游响应状态码转变为业务可识别错误
// 参数说明：
//   - status: 上游 HTTP 状态码
//
// 返回值：
//   - error: 标准化错误类型，2xx 返回 nil
func FromStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == 401:
		return ErrUnauthenticated
	case status == 400:
		return ErrBadRequest
	case status == 404:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: upstream status %d", ErrNetwork, status)
	}
}

// WrapNetwork 请求根本没有完成（连接失败、超时等）
func WrapNetwork(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

// IsUnauthenticated 判断是否需要跳转登录
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsNotFound 判断是否渲染"无数据"状态
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StatusOf 错误 -> 前端响应状态码（兜底 502，表示上游故障）
func StatusOf(err error) int {
	switch {
	case err == nil:
		return 200
	case errors.Is(err, ErrUnauthenticated):
		return 401
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrValidation):
		return 400
	case errors.Is(err, ErrNotFound):
		return 404
	default:
		return 502
	}
}
