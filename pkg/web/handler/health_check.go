package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
)

type HealthCheckHandler struct {
	// upstreamCheck 探测上游公告板 API 可达性，nil 表示不探测
	upstreamCheck func(ctx context.Context) error
}

func NewHealthCheckHandler(upstreamCheck func(ctx context.Context) error) *HealthCheckHandler {
	return &HealthCheckHandler{upstreamCheck: upstreamCheck}
}

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentStatus `json:"components,omitempty"`
}

type ComponentStatus struct {
	Name    string        `json:"name"`
	Status  string        `json:"status"`
	IsCore  bool          `json:"is_core"` // 关键组件标识
	Latency time.Duration `json:"latency,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// AdvancedHealthCheck 增强的健康检查接口。
// 上游 API 是唯一的关键组件：它不可达时本服务只剩静态壳
func (h *HealthCheckHandler) AdvancedHealthCheck(ctx context.Context, c *app.RequestContext) {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	}
	if h.upstreamCheck != nil {
		status.Components = append(status.Components, h.checkUpstream(ctx))
	}

	if hasCriticalErrors(status.Components) {
		status.Status = "degraded"
		c.JSON(503, status)
		return
	}

	c.JSON(200, status)
}

func (h *HealthCheckHandler) checkUpstream(ctx context.Context) ComponentStatus {
	start := time.Now()
	comp := ComponentStatus{Name: "upstream-api", Status: "ok", IsCore: true}
	if err := h.upstreamCheck(ctx); err != nil {
		comp.Status = "critical"
		comp.Error = err.Error()
	}
	comp.Latency = time.Since(start)
	return comp
}

func hasCriticalErrors(components []ComponentStatus) bool {
	for _, comp := range components {
		// 核心组件状态异常或任意组件发生严重错误
		if (comp.IsCore && comp.Status != "ok") || comp.Status == "critical" {
			return true
		}
	}
	return false
}
