package assistant

import (
	"strings"
	"testing"
)

func TestMatchSeedExactQuestion(t *testing.T) {
	faq := NewFAQStore()

	res := faq.Match("what is actms")
	if res.Source != SourceFAQ {
		t.Fatalf("source = %q, want %q", res.Source, SourceFAQ)
	}
	if !strings.Contains(res.Message, "Anti-Corruption Tender Management System") {
		t.Errorf("unexpected answer: %q", res.Message)
	}
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", res.Confidence)
	}
}

func TestMatchPartialOverlap(t *testing.T) {
	faq := NewFAQStore()

	// One of the three key tokens of "what is actms" is present, and the
	// "system" hit on the system-status entry only reaches 1/5.
	res := faq.Match("tell me about actms system")
	if res.Source != SourceFAQ {
		t.Fatalf("source = %q, want %q", res.Source, SourceFAQ)
	}
	if !strings.Contains(res.Message, "Anti-Corruption Tender Management System") {
		t.Errorf("matched wrong entry: %q", res.Message)
	}
	if want := 1.0 / 3.0; res.Confidence != want {
		t.Errorf("confidence = %v, want %v", res.Confidence, want)
	}
}

func TestMatchEmptyMessage(t *testing.T) {
	faq := NewFAQStore()

	for _, msg := range []string{"", "   ", "\t\n"} {
		res := faq.Match(msg)
		if res.Source != SourceNoMatch {
			t.Errorf("Match(%q) source = %q, want %q", msg, res.Source, SourceNoMatch)
		}
		if res.Confidence != 0 {
			t.Errorf("Match(%q) confidence = %v, want 0", msg, res.Confidence)
		}
		if res.Message != noMatchMessage {
			t.Errorf("Match(%q) message = %q", msg, res.Message)
		}
	}
}

func TestMatchNoOverlap(t *testing.T) {
	faq := NewFAQStore()

	res := faq.Match("quarterly revenue forecast")
	if res.Source != SourceNoMatch {
		t.Errorf("source = %q, want %q", res.Source, SourceNoMatch)
	}
}

func TestMatchThresholdIsStrict(t *testing.T) {
	faq := &FAQStore{}
	faq.Add("a b c d e f g h i j", "ten token answer", 1.0)

	// Three of ten key tokens overlap, scoring exactly 0.3. The threshold
	// must be exceeded, not met.
	res := faq.Match("a b c")
	if res.Source != SourceNoMatch {
		t.Errorf("source = %q, want %q at exact threshold", res.Source, SourceNoMatch)
	}
}

func TestMatchBelowThreshold(t *testing.T) {
	faq := &FAQStore{}
	faq.Add("one two three four", "answer", 1.0)

	res := faq.Match("one")
	if res.Source != SourceNoMatch {
		t.Errorf("source = %q, want %q for score 0.25", res.Source, SourceNoMatch)
	}
}

func TestMatchFirstInsertedWinsTies(t *testing.T) {
	faq := &FAQStore{}
	faq.Add("alpha beta", "first answer", 1.0)
	faq.Add("beta alpha", "second answer", 1.0)

	// Both entries score 1.0; only a strictly greater score may replace
	// the current best.
	res := faq.Match("alpha beta")
	if res.Message != "first answer" {
		t.Errorf("message = %q, want first-inserted entry", res.Message)
	}
}

func TestMatchHigherScoreReplacesBest(t *testing.T) {
	faq := &FAQStore{}
	faq.Add("alpha beta gamma", "broad answer", 1.0)
	faq.Add("alpha beta", "narrow answer", 1.0)

	// The later entry scores 1.0 against 2/3 for the earlier one.
	res := faq.Match("alpha beta")
	if res.Message != "narrow answer" {
		t.Errorf("message = %q, want higher-scoring entry", res.Message)
	}
}

func TestMatchExtraWordsDoNotPenalize(t *testing.T) {
	faq := &FAQStore{}
	faq.Add("alpha beta", "answer", 1.0)

	res := faq.Match("alpha beta plus many unrelated words here")
	if res.Source != SourceFAQ {
		t.Fatalf("source = %q, want %q", res.Source, SourceFAQ)
	}
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", res.Confidence)
	}
}

func TestAddNormalizesAndScales(t *testing.T) {
	faq := NewFAQStore()
	faq.Add("  New Question  ", "New answer", 0.8)

	res := faq.Match("new question")
	if res.Source != SourceFAQ {
		t.Fatalf("source = %q, want %q", res.Source, SourceFAQ)
	}
	if res.Message != "New answer" {
		t.Errorf("message = %q, want %q", res.Message, "New answer")
	}
	if res.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", res.Confidence)
	}
}

func TestAddClampsConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"above range", 1.5, 1.0},
		{"below range", -0.5, 0.0},
		{"in range", 0.6, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			faq := &FAQStore{}
			entry := faq.Add("some question", "answer", tt.in)
			if entry.Confidence != tt.want {
				t.Errorf("confidence = %v, want %v", entry.Confidence, tt.want)
			}
		})
	}
}

func TestAddOverwriteKeepsPosition(t *testing.T) {
	faq := &FAQStore{}
	faq.Add("alpha beta", "original", 1.0)
	faq.Add("beta alpha", "rival", 1.0)
	faq.Add("Alpha Beta", "updated", 1.0)

	// The overwritten entry keeps its first slot, so it still wins the tie.
	res := faq.Match("alpha beta")
	if res.Message != "updated" {
		t.Errorf("message = %q, want overwritten first entry", res.Message)
	}
}

func TestSeedEntriesMatchable(t *testing.T) {
	faq := NewFAQStore()

	tests := []struct {
		message string
		want    string
	}{
		{"how to submit bid", "To submit a bid"},
		{"what is suspicious bid", "flagged by our AI system"},
		{"how does ai detection work", "Isolation Forest"},
		{"what file formats supported", "PDF, DOC, DOCX"},
		{"how to view tender status", "dashboard"},
		{"what is audit log", "Audit logs track"},
		{"how to check system status", "system health indicators"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			res := faq.Match(tt.message)
			if res.Source != SourceFAQ {
				t.Fatalf("source = %q, want %q", res.Source, SourceFAQ)
			}
			if !strings.Contains(res.Message, tt.want) {
				t.Errorf("answer %q does not contain %q", res.Message, tt.want)
			}
			if res.Confidence != 1.0 {
				t.Errorf("confidence = %v, want 1.0 for exact question", res.Confidence)
			}
		})
	}
}
