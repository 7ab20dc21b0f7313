package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestReplyChunksCoverFullReply(t *testing.T) {
	reply := "Let's think about this step by step and work through each option carefully"

	chunks := ReplyChunks(reply)
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}

	var rebuilt strings.Builder
	for _, chunk := range chunks {
		if chunk == "" {
			t.Fatal("chunks must not be empty")
		}
		rebuilt.WriteString(chunk)
	}
	if strings.Join(strings.Fields(rebuilt.String()), " ") != reply {
		t.Fatalf("chunks must reassemble into the reply, got %q", rebuilt.String())
	}
}

func TestReplyChunksEmptyReply(t *testing.T) {
	if chunks := ReplyChunks(""); len(chunks) != 0 {
		t.Fatalf("empty reply must produce no chunks, got %v", chunks)
	}
}

func TestTruncateRunesKeepsUTF8Intact(t *testing.T) {
	short := "What is 2 + 2?"
	if got := truncateRunes(short, 80); got != short {
		t.Fatalf("short content must pass through, got %q", got)
	}

	long := strings.Repeat("é", 100)
	got := truncateRunes(long, 80)
	if got != strings.Repeat("é", 80)+"..." {
		t.Fatalf("expected 80 runes plus ellipsis, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
}

func TestHintForMatchesIntent(t *testing.T) {
	if !strings.Contains(hintFor("WHY is this the answer?"), "reasoning") {
		t.Fatal("why-questions should get a reasoning hint")
	}
	if !strings.Contains(hintFor("give me a hint please"), "nudge") {
		t.Fatal("hint requests should get a nudge")
	}
	if !strings.Contains(hintFor("what now"), "really testing") {
		t.Fatal("other content should get the default hint")
	}
}
