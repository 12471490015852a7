// Package intent decides routing from message text alone.  The lexical
// strategies are deterministic and auditable; the Classifier interface is
// the seam for swapping in a learned model without touching callers.
package intent

import "strings"

// Classifier decides whether a turn needs domain-expert handling.  The
// draft is the front desk's generated reply, which may itself signal a
// handoff.
type Classifier interface {
	RequiresExpert(message, draft string) bool
}

// medicalTerms is the fixed vocabulary of symptom, medication, anatomy
// and urgency terms that route a message to the domain expert.
var medicalTerms = []string{
	"symptom", "pain", "swelling", "medication", "side effect",
	"treatment", "diet", "dizzy", "nausea", "headache", "fever",
	"blood", "urine", "pressure", "worried", "concern", "help",
	"creatinine", "kidney", "dialysis", "doctor", "hospital",
	"emergency", "breathe", "chest", "heart",
}

// handoffPhrases are the fixed phrases a drafted front-desk reply uses
// when the model itself decided to hand off.
var handoffPhrases = []string{
	"clinical ai agent",
	"medical question",
	"let me connect you",
	"clinical team",
}

// Lexical routes on the medical vocabulary OR a handoff phrase in the
// draft.  Vocabulary misses do not route: coverage gaps fail closed.
type Lexical struct{}

func (Lexical) RequiresExpert(message, draft string) bool {
	return containsAny(message, medicalTerms) || containsAny(draft, handoffPhrases)
}

// recencyTerms mark queries about current or time-sensitive information.
var recencyTerms = []string{
	"recent", "latest", "new", "current", "2024", "2025",
	"study", "research", "trial", "breakthrough", "news",
	"update", "development", "discovery", "finding",
}

// researchTopics mark subjects whose guidance changes quickly enough to
// warrant live search even without a recency cue.
var researchTopics = []string{
	"sglt2", "inhibitor", "clinical trial", "fda approved",
	"guideline", "recommendation", "protocol",
}

// NeedsWebSearch reports whether the message asks for information that
// the static reference corpus is unlikely to cover.  The expert handler
// additionally forces a search when retrieval produced nothing usable.
func NeedsWebSearch(message string) bool {
	return containsAny(message, recencyTerms) || containsAny(message, researchTopics)
}

func containsAny(text string, terms []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
