package chatbot

import (
	"strings"
	"testing"
)

func TestKeywordMatch(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"How is my score calculated?", "0 to 10"},
		{"do I need a CAMERA?", "optional"},
		{"can I upload my resume here", "PDF"},
		{"hello there", "Hi!"},
	}
	for _, tc := range cases {
		got := Reply(tc.message)
		if !strings.Contains(got, tc.want) {
			t.Errorf("Reply(%q) = %q, want substring %q", tc.message, got, tc.want)
		}
	}
}

func TestFallback(t *testing.T) {
	if got := Reply("what is the meaning of life"); got != fallbackReply {
		t.Errorf("got %q, want fallback", got)
	}
	if got := Reply("   "); got != fallbackReply {
		t.Errorf("blank message: got %q, want fallback", got)
	}
}
