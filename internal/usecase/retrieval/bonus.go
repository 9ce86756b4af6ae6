package retrieval

import (
	"strings"

	"github.com/cardwise/cardwise/internal/domain/card"
)

// Soft relevance bonuses layered on top of the lexical base score.
const (
	keywordIncrement    = 0.05
	keywordBonusCap     = 0.20
	bankPreferenceBonus = 0.25
)

// keywordSynonyms is the fixed domain vocabulary rewarded when a term
// appears in both the query and the candidate's text.
var keywordSynonyms = []string{
	"cashback", "travel", "lounge", "fuel", "shopping", "online", "groceries",
	"dining", "rewards", "airport",
	"airport lounge", "priority pass", "milestone", "annual fee waiver",
	"forex", "foreign", "international",
	"movie", "movies", "cinema", "railway lounge", "travel insurance",
	"dining offers", "fuel surcharge",
}

// keywordBonus rewards domain-synonym overlap between the query and the
// candidate's name/description/benefits/tags, capped at keywordBonusCap.
func keywordBonus(queryLower string, rec card.Record) float64 {
	text := rec.BonusText()
	bonus := 0.0
	for _, w := range keywordSynonyms {
		if strings.Contains(queryLower, w) && strings.Contains(text, w) {
			bonus += keywordIncrement
		}
	}
	if bonus > keywordBonusCap {
		return keywordBonusCap
	}
	return bonus
}

// bankBonus adds a flat preference bonus when the requested bank matches the
// candidate's bank as a case-insensitive substring.
func bankBonus(bank string, rec card.Record) float64 {
	if bank == "" {
		return 0
	}
	if strings.Contains(strings.ToLower(rec.BankName), strings.ToLower(bank)) {
		return bankPreferenceBonus
	}
	return 0
}
