package console

import (
	"fmt"
	"testing"

	"board-front/pkg/core/user/model"
)

func TestSearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	users := []model.User{
		{UserID: "alpha01", UserName: "Kim", UserNickname: "Sky"},
		{UserID: "beta02", UserName: "Lee", UserNickname: "skyline"},
		{UserID: "SKYNET", UserName: "Park", UserNickname: "cloud"},
		{UserID: "gamma03", UserName: "Choi", UserNickname: "sea"},
	}

	page := BuildPage(users, "SKY", 1)
	if len(page.Rows) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(page.Rows))
	}
	for _, row := range page.Rows {
		if row.UserID == "gamma03" {
			t.Fatal("non-matching user included")
		}
	}
}

func TestPaginationIsOneBased(t *testing.T) {
	users := make([]model.User, 0, 23)
	for i := 0; i < 23; i++ {
		users = append(users, model.User{UserID: fmt.Sprintf("user%02d", i)})
	}

	first := BuildPage(users, "", 1)
	if len(first.Rows) != 10 || first.TotalPages != 3 {
		t.Fatalf("page 1: rows=%d totalPages=%d", len(first.Rows), first.TotalPages)
	}
	if first.HasPrev || !first.HasNext {
		t.Fatalf("page 1 controls: prev=%v next=%v", first.HasPrev, first.HasNext)
	}

	last := BuildPage(users, "", 3)
	if len(last.Rows) != 3 || last.HasNext || !last.HasPrev {
		t.Fatalf("page 3: rows=%d prev=%v next=%v", len(last.Rows), last.HasPrev, last.HasNext)
	}

	clamped := BuildPage(users, "", 0)
	if clamped.CurrentPage != 1 {
		t.Fatalf("page below 1 must clamp, got %d", clamped.CurrentPage)
	}
}

func TestEmptyResultStillOnePage(t *testing.T) {
	page := BuildPage(nil, "anything", 1)
	if len(page.Rows) != 0 || page.TotalPages != 1 {
		t.Fatalf("rows=%d totalPages=%d", len(page.Rows), page.TotalPages)
	}
}
