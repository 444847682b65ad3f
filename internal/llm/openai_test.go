package llm

import (
	"strings"
	"testing"
)

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	if _, err := NewOpenAIClient("", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}

	cli, err := NewOpenAIClient("sk-test", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cli.model == "" {
		t.Error("model not defaulted")
	}
}

func TestBuildMessagesWithoutContext(t *testing.T) {
	msgs := buildMessages("how do I submit a bid", "")
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].OfSystem == nil {
		t.Fatal("first message is not a system turn")
	}
	if !strings.Contains(msgs[0].OfSystem.Content.OfString.Value, "ACTMS") {
		t.Error("system prompt missing platform framing")
	}
	if msgs[1].OfUser == nil {
		t.Fatal("last message is not the user turn")
	}
	if got := msgs[1].OfUser.Content.OfString.Value; got != "how do I submit a bid" {
		t.Errorf("user content = %q", got)
	}
}

func TestBuildMessagesContextPrecedesUser(t *testing.T) {
	block := `Additional context: {"total_tenders": 3}`
	msgs := buildMessages("question", block)
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	if msgs[1].OfSystem == nil {
		t.Fatal("context block is not a system turn")
	}
	if got := msgs[1].OfSystem.Content.OfString.Value; got != block {
		t.Errorf("context turn = %q", got)
	}
	if msgs[2].OfUser == nil {
		t.Error("user turn must come last")
	}
}
