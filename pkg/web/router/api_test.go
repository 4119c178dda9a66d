package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"

	"board-front/pkg/common/config"
	boardclient "board-front/pkg/core/board/client"
	"board-front/pkg/core/upstream"
	userclient "board-front/pkg/core/user/client"
	"board-front/pkg/web/middleware"
	"board-front/pkg/web/router"
)

// newEngine 用桩上游拉起完整引擎。upstreamHandler 为 nil 时指向一个
// 不可达地址，纯路由层测试用不到上游
func newEngine(t *testing.T, upstreamHandler http.Handler) (*server.Hertz, *config.Config) {
	t.Helper()

	baseURL := "http://127.0.0.1:1"
	if upstreamHandler != nil {
		srv := httptest.NewServer(upstreamHandler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}

	up, err := upstream.New(baseURL, time.Second, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Load()
	cfg.Middleware.RateLimit.Rate = 1000

	h := server.New()
	router.RegisterAPIs(h, cfg, router.Deps{
		Users:  userclient.New(up),
		Boards: boardclient.NewFetcher(up),
	})
	return h, cfg
}

func TestHealthCheckRoute(t *testing.T) {
	h, _ := newEngine(t, nil)

	w := ut.PerformRequest(h.Engine, "GET", "/health", nil)
	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode())
	}
}

func TestAnonymousMeIsNotAnError(t *testing.T) {
	h, _ := newEngine(t, nil)

	w := ut.PerformRequest(h.Engine, "GET", "/api/v1/auth/me", nil)
	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode())
	}
	body := string(resp.Body())
	if !strings.Contains(body, `"authenticated":false`) {
		t.Fatalf("body: %s", body)
	}
	// 匿名会话的可导航集合里不能出现管理台路由
	if strings.Contains(body, "user-console") {
		t.Fatalf("anonymous session sees admin route: %s", body)
	}
}

// 未登录访问需登录路由：401 并附带登录跳转
func TestGatedRoutesRedirectAnonymousToLogin(t *testing.T) {
	h, _ := newEngine(t, nil)

	for _, tc := range []struct{ method, path string }{
		{"GET", "/api/v1/my-posts"},
		{"POST", "/api/v1/boards"},
		{"PUT", "/api/v1/users/profile"},
		{"GET", "/api/v1/admin/users"},
	} {
		w := ut.PerformRequest(h.Engine, tc.method, tc.path, nil)
		resp := w.Result()
		if resp.StatusCode() != 401 {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, resp.StatusCode())
		}
		if !strings.Contains(string(resp.Body()), `"/login"`) {
			t.Fatalf("%s %s: missing login redirect: %s", tc.method, tc.path, resp.Body())
		}
	}
}

// 已登录但级别不够：管理台路由对其根本不存在
func TestAdminRoutesAbsentForRegularUser(t *testing.T) {
	h, cfg := newEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/current-user" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"userId":"u1","userNickname":"sky","userLevel":1}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	token, err := middleware.IssueSessionToken(&cfg.Session, "u1", "JSESSIONID=abc")
	if err != nil {
		t.Fatal(err)
	}

	w := ut.PerformRequest(h.Engine, "GET", "/api/v1/admin/users", nil,
		ut.Header{Key: "Cookie", Value: cfg.Session.CookieName + "=" + token})
	resp := w.Result()
	if resp.StatusCode() != 404 {
		t.Fatalf("Expected 404, got %d", resp.StatusCode())
	}
}

func TestBoardListRoute(t *testing.T) {
	h, _ := newEngine(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/boards/category/free" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"boardNumber":1,"boardTitle":"first post","boardWrite":"hello","boardCategory":2,
			 "user":{"userId":"u1","userNickname":"sky","userLevel":1},
			 "createdDate":"2024-10-01T12:00:00","updatedDate":"2024-10-01T12:00:00"}
		]`))
	}))

	w := ut.PerformRequest(h.Engine, "GET", "/api/v1/boards/category/free", nil)
	resp := w.Result()
	if resp.StatusCode() != 200 {
		t.Fatalf("Expected 200, got %d: %s", resp.StatusCode(), resp.Body())
	}
	body := string(resp.Body())
	if !strings.Contains(body, "first post") {
		t.Fatalf("body: %s", body)
	}
}

// 负数或非数字页码是错误请求，不能变成 500
func TestBadPageParameterRejected(t *testing.T) {
	h, _ := newEngine(t, nil)

	for _, page := range []string{"-1", "abc"} {
		w := ut.PerformRequest(h.Engine, "GET", "/api/v1/boards/category/free?page="+page, nil)
		resp := w.Result()
		if resp.StatusCode() != 400 {
			t.Fatalf("page=%s: expected 400, got %d", page, resp.StatusCode())
		}
	}
}

// 篡改过的会话令牌按匿名处理，而不是报错
func TestForgedSessionTokenTreatedAsAnonymous(t *testing.T) {
	h, cfg := newEngine(t, nil)

	w := ut.PerformRequest(h.Engine, "GET", "/api/v1/my-posts", nil,
		ut.Header{Key: "Cookie", Value: cfg.Session.CookieName + "=not-a-jwt"})
	resp := w.Result()
	if resp.StatusCode() != 401 {
		t.Fatalf("Expected 401, got %d", resp.StatusCode())
	}
}
