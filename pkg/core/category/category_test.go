package category

import "testing"

func TestCodeTokenRoundTrip(t *testing.T) {
	for _, c := range []Code{All, Free, Questions, Notice} {
		if got := FromToken(Token(c)); got != c {
			t.Fatalf("round trip for %d: got %d", c, got)
		}
	}
}

func TestNoticeIsFour(t *testing.T) {
	// 公告编码在历史前端页面里被错记为 2，规范映射以存储编码为准
	if Notice != 4 {
		t.Fatalf("Notice=%d", Notice)
	}
	if FromToken("notice") != Notice {
		t.Fatal("token notice must map to the notice code")
	}
}

func TestUnknownInputsFallBack(t *testing.T) {
	if got := FromToken("weird"); got != All {
		t.Fatalf("unknown token: got %d, want All", got)
	}
	if got := Token(Code(99)); got != "all" {
		t.Fatalf("unknown code token: got %q", got)
	}
	if got := DisplayName(Code(99)); got != "Unknown" {
		t.Fatalf("unknown code name: got %q", got)
	}
}

func TestDisplayNames(t *testing.T) {
	cases := map[Code]string{
		All:       "All",
		Free:      "Free",
		Questions: "Questions",
		Notice:    "Notice",
	}
	for c, want := range cases {
		if got := DisplayName(c); got != want {
			t.Fatalf("DisplayName(%d)=%q, want %q", c, got, want)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid(Free) || Valid(Code(0)) || Valid(Code(5)) {
		t.Fatal("Valid boundary check failed")
	}
}
