package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "board-front/pkg/common/errors"
	"board-front/pkg/core/user/model"
	"board-front/pkg/core/upstream"
)

func newClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	up, err := upstream.New(srv.URL, time.Second, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return New(up)
}

func TestLoginExtractsSessionCookie(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) == "" {
			t.Error("empty login body")
		}
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc123", Path: "/", HttpOnly: true})
	}))

	cookie, err := c.Login(context.Background(), "user01", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if cookie != "JSESSIONID=abc123" {
		t.Fatalf("cookie=%q", cookie)
	}
}

func TestLoginRejected(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.Login(context.Background(), "user01", "wrong")
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCurrentUser(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "JSESSIONID=abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"userId":"u1","userNickname":"sky","userLevel":4}`))
	}))

	u, err := c.CurrentUser(context.Background(), "JSESSIONID=abc123")
	if err != nil {
		t.Fatal(err)
	}
	if u.UserID != "u1" || !u.IsAdmin() {
		t.Fatalf("decoded user: %+v", u)
	}

	_, err = c.CurrentUser(context.Background(), "")
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("anonymous lookup: %v", err)
	}
}

func TestValidateRegister(t *testing.T) {
	form := RegisterForm{UserID: "user01", UserPassword: "pw"}
	if err := ValidateRegister(form, "pw"); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	if err := ValidateRegister(form, "different"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("password mismatch: %v", err)
	}
	short := RegisterForm{UserID: "abc", UserPassword: "pw"}
	if err := ValidateRegister(short, "pw"); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("short id: %v", err)
	}
}

func TestCheckDuplicate(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if string(body) == `{"userId":"taken1"}` {
			w.Write([]byte(`{"userIdExists":true}`))
			return
		}
		w.Write([]byte(`{"nicknameExists":false}`))
	}))

	exists, err := c.CheckDuplicate(context.Background(), "userId", "taken1")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("taken id reported free")
	}

	exists, err = c.CheckDuplicate(context.Background(), "userNickname", "fresh")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("free nickname reported taken")
	}
}

func TestUpdateProfileMultipart(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not multipart: %v", err)
			return
		}
		if r.FormValue("userNickname") != "sky" || r.FormValue("userLevel") != "1" {
			t.Errorf("fields: %v", r.MultipartForm.Value)
		}
		file, header, err := r.FormFile("profileImage")
		if err != nil {
			t.Errorf("file missing: %v", err)
			return
		}
		defer file.Close()
		if header.Filename != "avatar.png" {
			t.Errorf("filename=%q", header.Filename)
		}
	}))

	err := c.UpdateProfile(context.Background(), "JSESSIONID=abc", "u1", ProfileUpdate{
		Nickname:  "sky",
		Name:      "Kim",
		Password:  "pw",
		Level:     1,
		Image:     []byte{0x89, 0x50, 0x4e, 0x47},
		ImageName: "avatar.png",
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestAdminUpdateRejectsBadLevelLocally(t *testing.T) {
	called := false
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.AdminUpdate(context.Background(), "JSESSIONID=abc", model.User{UserID: "u1", UserLevel: 9})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if called {
		t.Fatal("invalid level must not reach upstream")
	}
}

func TestFindIDRelaysUpstreamText(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/find-id" && r.FormValue("nickname") == "sky" {
			w.Write([]byte("Your ID is: user01"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	msg, err := c.FindID(context.Background(), "sky")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "Your ID is: user01" {
		t.Fatalf("msg=%q", msg)
	}

	_, err = c.FindID(context.Background(), "nobody")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown nickname: %v", err)
	}
}
