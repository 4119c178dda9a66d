package authz

import (
	"testing"

	"board-front/pkg/core/board/model"
)

type fakeSession struct {
	authed bool
	admin  bool
}

func (f fakeSession) IsAuthenticated() bool         { return f.authed }
func (f fakeSession) IsAdmin() bool                 { return f.admin }
func (f fakeSession) CanModify(b *model.Board) bool { return f.authed }

func TestAllows(t *testing.T) {
	anon := fakeSession{}
	member := fakeSession{authed: true}
	admin := fakeSession{authed: true, admin: true}

	cases := []struct {
		route RouteClass
		anon  bool
		user  bool
		admin bool
	}{
		{RouteListing, true, true, true},
		{RouteDetail, true, true, true},
		{RouteCompose, false, true, true},
		{RouteMyPosts, false, true, true},
		{RouteProfileEdit, false, true, true},
		{RouteUserConsole, false, false, true},
	}
	for _, tc := range cases {
		if got := Allows(anon, tc.route); got != tc.anon {
			t.Fatalf("%s anonymous: got %v", tc.route, got)
		}
		if got := Allows(member, tc.route); got != tc.user {
			t.Fatalf("%s member: got %v", tc.route, got)
		}
		if got := Allows(admin, tc.route); got != tc.admin {
			t.Fatalf("%s admin: got %v", tc.route, got)
		}
	}
}

func TestUnknownRouteDenied(t *testing.T) {
	admin := fakeSession{authed: true, admin: true}
	if Allows(admin, RouteClass("made-up")) {
		t.Fatal("unregistered route class must be denied")
	}
}

// 动作级检查直接委托会话能力，不看路由表
func TestCanModifyDelegatesToSession(t *testing.T) {
	b := &model.Board{BoardNumber: 1}
	if CanModify(fakeSession{}, b) {
		t.Fatal("anonymous session must not modify")
	}
	if !CanModify(fakeSession{authed: true}, b) {
		t.Fatal("capable session denied")
	}
}

// 检查失败的路由根本不出现在可导航集合里
func TestNavigableRoutesOmitDeniedEntries(t *testing.T) {
	member := NavigableRoutes(fakeSession{authed: true})
	for _, r := range member {
		if r == RouteUserConsole {
			t.Fatal("member must not see the user console route")
		}
	}
	if len(member) != 5 {
		t.Fatalf("member routes: %v", member)
	}

	anon := NavigableRoutes(fakeSession{})
	if len(anon) != 2 {
		t.Fatalf("anonymous routes: %v", anon)
	}
}
