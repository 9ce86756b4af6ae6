// Package advisor orchestrates a chat turn: intent routing, profile
// slot-filling, retrieval, optional web search, and LLM explanation.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/cardwise/cardwise/internal/domain"
	"github.com/cardwise/cardwise/internal/domain/card"
	"github.com/cardwise/cardwise/internal/domain/search/query"
	sess "github.com/cardwise/cardwise/internal/domain/session"
	"github.com/cardwise/cardwise/internal/logger"
	"github.com/cardwise/cardwise/internal/usecase/intent"
)

const (
	rankMaxCandidates = 8
	compareSearchK    = 5
)

// Answer is the assistant's reply for one turn.
type Answer struct {
	Text           string
	Cards          []card.Record
	ProfileUpdated bool
	Suggestions    []string
}

// Service answers user turns. The web searcher and LLM are optional;
// the service degrades to dataset-only answers without them.
type Service struct {
	retriever Retriever
	llm       domain.Completer
	web       domain.WebSearcher
	topK      int
}

// New creates an advisor service.
func New(retriever Retriever, llm domain.Completer, web domain.WebSearcher, topK int) *Service {
	if topK <= 0 {
		topK = query.DefaultTopK
	}
	return &Service{retriever: retriever, llm: llm, web: web, topK: topK}
}

// Answer handles one user turn. It may update profile in place with
// hints parsed from the query; ProfileUpdated reports whether it did.
func (s *Service) Answer(ctx context.Context, rawQuery string, profile *sess.Profile) (Answer, error) {
	q := intent.Sanitize(strings.TrimSpace(rawQuery))
	if q == "" {
		return Answer{}, domain.ErrInvalidQuery
	}

	log := logger.FromContext(ctx)
	it := intent.Detect(q)
	log.Debug("turn routed", zap.String("intent", string(it)))

	switch it {
	case intent.Smalltalk:
		return s.smalltalk(ctx, q), nil
	case intent.BankingQA:
		return s.bankingQA(ctx, q), nil
	case intent.Compare:
		if a, b, ok := intent.ExtractComparePair(q); ok {
			return s.compare(ctx, q, a, b)
		}
	}

	updated := applyHints(profile, intent.ParseProfileHints(q))
	updated = applyHints(profile, intent.ExtractFilters(q)) || updated

	// Ask for the next missing slot only on the recommendation path.
	if it == intent.Recommend {
		if missing := profile.MissingSlots(); len(missing) > 0 {
			slot := missing[0]
			return Answer{
				Text:           slotQuestions[slot],
				ProfileUpdated: updated,
				Suggestions:    slotChips[slot],
			}, nil
		}
	}

	params, err := query.New(q, profile.Bank, profile.MaxFee, profile.Categories, s.topK)
	if err != nil {
		return Answer{}, fmt.Errorf("%v: %w", err, domain.ErrInvalidQuery)
	}
	cards, err := s.retriever.Search(ctx, params)
	if err != nil {
		return Answer{}, fmt.Errorf("retrieve cards: %w", err)
	}

	var webText string
	if intent.NeedsWebSearch(q, len(cards) == 0) && s.webEnabled() {
		webText = s.webHighlights(ctx, q)
	}

	return Answer{
		Text:           s.rank(ctx, q, profile, cards, webText),
		Cards:          cards,
		ProfileUpdated: updated,
		Suggestions:    defaultSuggestions,
	}, nil
}

func (s *Service) smalltalk(ctx context.Context, q string) Answer {
	ql := strings.ToLower(q)
	if strings.Contains(ql, "thank") {
		return Answer{Text: smalltalkReplies["thanks"], Suggestions: []string{"Recommend a card", "Compare cards"}}
	}
	if strings.Contains(ql, "help") {
		return Answer{Text: smalltalkReplies["help"], Suggestions: []string{"cashback", "travel lounge", "fuel"}}
	}
	if out := s.complete(ctx, fmt.Sprintf(smalltalkPrompt, q), 0.2, 200); out != "" {
		return Answer{Text: out, Suggestions: []string{"cashback", "travel lounge", "fuel"}}
	}
	return Answer{Text: smalltalkReplies["hello"], Suggestions: []string{"cashback", "shopping online", "fuel"}}
}

func (s *Service) bankingQA(ctx context.Context, q string) Answer {
	suggestions := []string{"Recommend a credit card", "Compare two cards"}
	if out := s.complete(ctx, fmt.Sprintf(bankingQAPrompt, q), 0.2, 700); out != "" {
		return Answer{Text: out, Suggestions: suggestions}
	}
	return Answer{
		Text: "A debit card is a payment card linked to your bank account. When you pay or withdraw cash,\n" +
			"the amount is deducted immediately from your available balance.\n\n" +
			"- Works at ATMs, POS, and online.\n" +
			"- No credit line or interest; usually lower fees than credit cards.",
		Suggestions: suggestions,
	}
}

func (s *Service) compare(ctx context.Context, q, nameA, nameB string) (Answer, error) {
	rowA, okA := s.findOne(ctx, nameA)
	rowB, okB := s.findOne(ctx, nameB)
	if !okA || !okB {
		if s.webEnabled() {
			web := s.webHighlights(ctx, fmt.Sprintf("Compare %s vs %s India credit card fees benefits", nameA, nameB))
			if web != "" {
				return Answer{Text: "I couldn't find both cards locally.\n\n### 🌐 Web highlights\n" + web}, nil
			}
		}
		return Answer{Text: "I couldn't find both cards in your dataset. Check spellings or upload a richer CSV."}, nil
	}

	prompt := fmt.Sprintf(comparePrompt, q, recordJSON(rowA), recordJSON(rowB))
	text := s.complete(ctx, prompt, 0.2, 800)
	if text == "" {
		text = compareFallback(rowA, rowB)
	}
	return Answer{Text: text, Cards: []card.Record{rowA, rowB}}, nil
}

// findOne retrieves the best dataset match for a card name, preferring
// rows whose name actually contains the asked name.
func (s *Service) findOne(ctx context.Context, name string) (card.Record, bool) {
	params, err := query.New(name, "", nil, nil, compareSearchK)
	if err != nil {
		return card.Record{}, false
	}
	rows, err := s.retriever.Search(ctx, params)
	if err != nil || len(rows) == 0 {
		return card.Record{}, false
	}
	lowered := strings.ToLower(name)
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.CardName), lowered) {
			return r, true
		}
	}
	return rows[0], true
}

// rank produces the unified dataset+web explanation.
func (s *Service) rank(ctx context.Context, q string, profile *sess.Profile, cards []card.Record, webText string) string {
	if len(cards) == 0 && webText == "" {
		return "_No strong matches found in your dataset or on the web._"
	}

	prompt := fmt.Sprintf(recommendPrompt, profileJSON(profile), q, candidateJSONL(cards))
	if webText != "" {
		prompt += "\nWEB FINDINGS (bullets):\n" + webText +
			"\n\nIncorporate corroborated web facts (add source in parentheses), but avoid contradictions.\n"
	}
	if out := s.complete(ctx, prompt, 0.2, 900); out != "" {
		return out
	}
	return fuseAnswers(cards, webText)
}

// webHighlights searches the web and summarizes results into bullets.
func (s *Service) webHighlights(ctx context.Context, q string) string {
	results, err := s.web.Search(ctx, q)
	if err != nil {
		logger.FromContext(ctx).Warn("web search failed", zap.Error(err))
		return ""
	}
	if len(results) == 0 {
		return ""
	}

	lines := make([]string, 0, len(results))
	for _, r := range results {
		title := r.Title
		if title == "" {
			title = r.Content
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", strings.TrimSpace(title), hostOf(r.URL)))
	}
	sources := strings.Join(lines, "\n")

	if out := s.complete(ctx, fmt.Sprintf(webSummaryPrompt, q, sources), 0.2, 500); out != "" {
		return out
	}
	return sources
}

// complete runs the LLM, swallowing unavailability into an empty string
// so callers can fall back to canned text.
func (s *Service) complete(ctx context.Context, prompt string, temperature float32, maxTokens int) string {
	if s.llm == nil || !s.llm.Enabled() {
		return ""
	}
	out, err := s.llm.Complete(ctx, prompt, temperature, maxTokens)
	if err != nil {
		logger.FromContext(ctx).Warn("llm completion failed", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(out)
}

func (s *Service) webEnabled() bool {
	return s.web != nil && s.web.Enabled()
}

// applyHints fills empty profile slots from parsed hints and reports
// whether anything changed. Filled slots are never overwritten.
func applyHints(p *sess.Profile, h intent.Hints) bool {
	changed := false
	if p.Income == nil && h.Income != nil {
		p.Income, changed = h.Income, true
	}
	if p.Cibil == nil && h.Cibil != nil {
		p.Cibil, changed = h.Cibil, true
	}
	if p.MaxFee == nil && h.MaxFee != nil {
		p.MaxFee, changed = h.MaxFee, true
	}
	if len(p.Categories) == 0 && len(h.Categories) > 0 {
		p.Categories, changed = h.Categories, true
	}
	if p.Bank == "" && h.Bank != "" {
		p.Bank, changed = h.Bank, true
	}
	return changed
}

type promptCard struct {
	BankName    string `json:"bank_name"`
	CardName    string `json:"card_name"`
	AnnualFee   string `json:"annual_fee"`
	KeyBenefits string `json:"key_benefits"`
	Description string `json:"description"`
	Website     string `json:"website"`
	CardType    string `json:"card_type"`
}

func recordJSON(r card.Record) string {
	data, err := json.Marshal(promptCard{
		BankName:    r.BankName,
		CardName:    r.CardName,
		AnnualFee:   r.AnnualFee,
		KeyBenefits: r.KeyBenefits,
		Description: r.Description,
		Website:     r.Website,
		CardType:    r.CardType,
	})
	if err != nil {
		return "{}"
	}
	return string(data)
}

func candidateJSONL(cards []card.Record) string {
	lines := make([]string, 0, rankMaxCandidates)
	for i, r := range cards {
		if i >= rankMaxCandidates {
			break
		}
		lines = append(lines, recordJSON(r))
	}
	return strings.Join(lines, "\n")
}

func profileJSON(p *sess.Profile) string {
	data, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// fuseAnswers renders a plain dataset+web summary when no LLM is
// available.
func fuseAnswers(cards []card.Record, webText string) string {
	var parts []string
	if len(cards) > 0 {
		parts = append(parts, "### 🟡 Top matches from your dataset:")
		for _, r := range cards {
			line := fmt.Sprintf("- **%s** — %s (%s)\n  - %s\n  - **Benefits:** %s",
				r.CardName, r.BankName, r.CardType, r.Description, r.KeyBenefits)
			if r.Website != "" {
				line += fmt.Sprintf("\n  - [Apply/Details](%s)", r.Website)
			}
			parts = append(parts, line)
		}
	} else {
		parts = append(parts, "_No strong matches found in your uploaded dataset._")
	}
	if webText != "" {
		parts = append(parts, "### 🌐 Web highlights:\n"+webText)
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

func compareFallback(a, b card.Record) string {
	fmtCard := func(r card.Record) string {
		return fmt.Sprintf("**%s** — %s (%s)\n- Annual fee: ₹%s\n- Perks: %s\n- Notes: %s\n- Link: %s\n",
			r.CardName, r.BankName, r.CardType, r.AnnualFee, r.KeyBenefits, r.Description, r.Website)
	}
	return "### 🔍 Side-by-side\n\n" + fmtCard(a) + "\n" + fmtCard(b) +
		"\n> Tip: Tell me your main spend (fuel, travel+lounge, online shopping, dining, groceries) and fee comfort; I'll suggest which fits you better."
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
