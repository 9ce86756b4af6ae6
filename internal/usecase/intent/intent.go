// Package intent classifies user messages and extracts profile hints and
// retrieval constraints from free text. All routing is rule-based; the
// language model never decides where a message goes.
package intent

import "strings"

// Intent is the routed destination of one user message.
type Intent string

const (
	// Smalltalk covers greetings, thanks, and help requests.
	Smalltalk Intent = "smalltalk"
	// Compare asks for a side-by-side of two named cards.
	Compare Intent = "compare"
	// BankingQA is a general banking question, not a recommendation.
	BankingQA Intent = "banking_qa"
	// Recommend asks for card suggestions.
	Recommend Intent = "recommend"
	// Unknown is anything the rules cannot place.
	Unknown Intent = "unknown"
)

// Short greeting words matched as whole tokens; substring matching would
// fire on words like "which" or "superb".
var smalltalkWords = map[string]bool{
	"hi": true, "hello": true, "hey": true, "namaste": true,
	"yo": true, "sup": true, "thank": true, "thanks": true, "help": true,
}

var smalltalkPhrases = []string{"good morning", "good evening", "thank you"}

var bankingQATriggers = []string{
	"what is ", "difference between", "how to ", "how does ", "meaning of ", "define ",
	"benefits of ", "pros and cons", "cons of ", "eligibility for ", "requirements for ",
	"credit score", "cibil score", "debit card", "upi", "net banking", "kcc", "loan", "emi",
}

var recommendTerms = []string{
	"credit card", "card", "cashback", "lounge", "travel", "airport", "rewards", "fuel",
	"groceries", "shopping", "dining", "movies", "no annual fee", "annual fee", "cibil",
	"eligibility", "income", "limit", "premium", "lakh", "fee", "bank",
}

// Detect routes a message to its intent. Order matters: smalltalk and
// explicit comparisons win over the broad recommendation vocabulary.
func Detect(q string) Intent {
	ql := strings.ToLower(strings.TrimSpace(q))
	if ql == "" {
		return Unknown
	}

	for _, w := range strings.Fields(strings.Trim(ql, "!.,?")) {
		if smalltalkWords[strings.Trim(w, "!.,?")] {
			return Smalltalk
		}
	}
	for _, p := range smalltalkPhrases {
		if strings.Contains(ql, p) {
			return Smalltalk
		}
	}

	if strings.Contains(ql, "compare") || strings.Contains(ql, " vs ") || strings.Contains(ql, "versus") {
		return Compare
	}

	for _, trigger := range bankingQATriggers {
		if strings.Contains(ql, trigger) {
			return BankingQA
		}
	}

	for _, term := range recommendTerms {
		if strings.Contains(ql, term) {
			return Recommend
		}
	}
	return Unknown
}

// NeedsWebSearch reports whether the query should be supplemented with a
// live web search: always when local retrieval came up empty, otherwise
// only for recency-sensitive wording.
func NeedsWebSearch(q string, localEmpty bool) bool {
	if localEmpty {
		return true
	}
	ql := strings.ToLower(q)
	for _, w := range []string{
		"latest", "news", "recent", "2024", "2025", "2026",
		"updated", "policy", "new rules", "change", "revised", "launch",
	} {
		if strings.Contains(ql, w) {
			return true
		}
	}
	return false
}
