package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "board-front/pkg/common/errors"
	"board-front/pkg/core/category"
	"board-front/pkg/core/upstream"
)

func newFetcher(t *testing.T, handler http.Handler) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	up, err := upstream.New(srv.URL, time.Second, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return NewFetcher(up)
}

func TestListByCategory(t *testing.T) {
	f := newFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/boards/category/free" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		// 上游时间戳是 Java LocalDateTime 序列化格式，不带时区
		w.Write([]byte(`[
			{"boardNumber":1,"boardTitle":"hello","boardWrite":"body","boardCategory":2,
			 "user":{"userId":"u1","userNickname":"sky","userLevel":1},
			 "createdDate":"2024-10-01T12:00:00","updatedDate":"2024-10-02T08:30:00"}
		]`))
	}))

	boards, err := f.ListByCategory(context.Background(), category.Free)
	if err != nil {
		t.Fatal(err)
	}
	if len(boards) != 1 {
		t.Fatalf("expected 1 board, got %d", len(boards))
	}
	b := boards[0]
	if b.BoardNumber != 1 || b.BoardCategory != category.Free || b.AuthorID() != "u1" {
		t.Fatalf("decoded board: %+v", b)
	}
	if b.UpdatedDate.Day() != 2 || b.UpdatedDate.Hour() != 8 {
		t.Fatalf("timestamp not parsed: %v", b.UpdatedDate)
	}
}

// 详情接口的任何非成功状态都按"查无此帖"处理
func TestGetByNumberMapsFailuresToNotFound(t *testing.T) {
	f := newFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := f.GetByNumber(context.Background(), 999)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByNumber(t *testing.T) {
	f := newFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/boards/detail/7" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"boardNumber":7,"boardTitle":"t","boardWrite":"b","boardCategory":4}`))
	}))

	b, err := f.GetByNumber(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsNotice() {
		t.Fatalf("category lost: %+v", b)
	}
	if b.AuthorID() != "" {
		t.Fatal("missing author must resolve to empty id")
	}
}

// 计数接口返回裸整数字面量，不是 JSON 对象
func TestCountByAuthorBareInteger(t *testing.T) {
	f := newFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`3`))
	}))

	n, err := f.CountByAuthor(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("count=%d", n)
	}
}

func TestCreateCarriesSessionCookie(t *testing.T) {
	var gotCookie string
	f := newFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"boardNumber":10,"boardTitle":"new","boardWrite":"post","boardCategory":2}`))
	}))

	b, err := f.Create(context.Background(), "JSESSIONID=abc", Draft{
		BoardTitle:    "new",
		BoardWrite:    "post",
		BoardCategory: category.Free,
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotCookie != "JSESSIONID=abc" {
		t.Fatalf("cookie not forwarded: %q", gotCookie)
	}
	if b.BoardNumber != 10 {
		t.Fatalf("created board: %+v", b)
	}
}

func TestUpdateUnauthenticated(t *testing.T) {
	f := newFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := f.Update(context.Background(), "", 7, Patch{BoardTitle: "x", BoardWrite: "y"})
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	var gotMethod, gotPath string
	f := newFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
	}))

	if err := f.Delete(context.Background(), "JSESSIONID=abc", 7); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/boards/delete/7" {
		t.Fatalf("%s %s", gotMethod, gotPath)
	}
}

func TestNetworkFailure(t *testing.T) {
	up, err := upstream.New("http://127.0.0.1:1", 100*time.Millisecond, 100*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	f := NewFetcher(up)

	_, err = f.ListByCategory(context.Background(), category.All)
	if !errors.Is(err, apperrors.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}
