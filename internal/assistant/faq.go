package assistant

import (
	"strings"
	"sync"
)

// matchThreshold is the minimum keyword-overlap score an entry must exceed
// (strictly) to be considered a match.
const matchThreshold = 0.3

const (
	noMatchMessage  = "I couldn't find an answer to your question in our knowledge base. Please try rephrasing your question or contact support for assistance."
	faqErrorMessage = "I encountered an error while searching for an answer. Please try again or contact support."
)

// FAQEntry is one curated knowledge-base answer. Key is the normalized
// question text; Confidence is the entry's static trust weight in [0,1].
type FAQEntry struct {
	Key        string
	Answer     string
	Confidence float64

	tokens map[string]struct{}
}

// FAQStore holds entries in insertion order behind an RWMutex so runtime
// additions can race resolution safely. Overwriting an existing key keeps
// its original position, so tie-breaking stays stable across updates.
type FAQStore struct {
	mu      sync.RWMutex
	entries []FAQEntry
	index   map[string]int
}

// NewFAQStore returns a store preloaded with the platform's curated answers.
func NewFAQStore() *FAQStore {
	s := &FAQStore{}
	for _, e := range seedFAQ {
		s.Add(e.question, e.answer, 1.0)
	}
	return s
}

// Add normalizes the question into a key and inserts or overwrites the
// entry. Confidence is clamped to [0,1]. The stored entry is returned.
func (s *FAQStore) Add(question, answer string, confidence float64) FAQEntry {
	key := normalize(question)
	entry := FAQEntry{
		Key:        key,
		Answer:     answer,
		Confidence: clampConfidence(confidence),
		tokens:     tokenSet(key),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[key]; ok {
		s.entries[i] = entry
	} else {
		s.index[key] = len(s.entries)
		s.entries = append(s.entries, entry)
	}
	return entry
}

// Match scores every entry against the normalized message by keyword
// overlap: the fraction of the entry's own key tokens present in the
// message. Extra message tokens never penalize. The best entry wins only
// with a strictly greater score, so equal scores keep the earlier entry.
func (s *FAQStore) Match(message string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Message: faqErrorMessage, Source: SourceError, Confidence: 0}
		}
	}()

	words := tokenSet(normalize(message))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *FAQEntry
	bestScore := 0.0
	for i := range s.entries {
		entry := &s.entries[i]
		overlap := 0
		for tok := range entry.tokens {
			if _, ok := words[tok]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		score := float64(overlap) / float64(max(len(entry.tokens), 1))
		if score > bestScore && score > matchThreshold {
			best = entry
			bestScore = score
		}
	}

	if best == nil {
		return Result{Message: noMatchMessage, Source: SourceNoMatch, Confidence: 0}
	}
	return Result{
		Message:    best.Answer,
		Source:     SourceFAQ,
		Confidence: best.Confidence * bestScore,
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}

var seedFAQ = []struct {
	question string
	answer   string
}{
	{
		"what is actms",
		"ACTMS (Anti-Corruption Tender Management System) is a comprehensive platform for managing government tenders with AI-powered fraud detection.",
	},
	{
		"how to submit bid",
		"To submit a bid: 1) Select a tender, 2) Enter company information, 3) Provide bid amount and proposal, 4) Upload required documents, 5) Submit for review.",
	},
	{
		"what is suspicious bid",
		"A suspicious bid is one flagged by our AI system for unusual patterns like extremely low amounts, poor proposal quality, or suspicious timing.",
	},
	{
		"how does ai detection work",
		"Our AI uses Isolation Forest algorithm to analyze bid patterns, amounts, proposal quality, and timing to detect potentially fraudulent submissions.",
	},
	{
		"what file formats supported",
		"We support common document formats including PDF, DOC, DOCX, TXT, and XLS files up to 15MB in size.",
	},
	{
		"how to view tender status",
		"You can view tender status through the dashboard or by accessing the tenders API endpoint which shows active, closed, and upcoming tenders.",
	},
	{
		"what is audit log",
		"Audit logs track all system activities including user actions, bid submissions, and security events for compliance and monitoring.",
	},
	{
		"how to check system status",
		"System status can be viewed through the dashboard which shows real-time metrics, alerts, and system health indicators.",
	},
}
