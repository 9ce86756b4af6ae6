package intent

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Hints are profile slots recovered from one message. Nil/empty fields mean
// "not mentioned", never "unset the slot".
type Hints struct {
	Income     *int
	Cibil      *int
	MaxFee     *int
	Categories []string
	Bank       string
}

var (
	incomeRe  = regexp.MustCompile(`(?:₹|rs\.?\s*)?([\d,]{4,})\s*(?:/m|per month|monthly)?`)
	cibilRe   = regexp.MustCompile(`\b([3-8]\d{2}|900)\b`)
	maxFeeRe  = regexp.MustCompile(`(?:max|under|below|<=|less than|upto|up to)\D*([\d,]{3,6})\s*(?:fee|annual fee)?`)
	feeOnlyRe = regexp.MustCompile(`(?:under|below|less than|upto|up to|<=)\s*₹?\s*([\d,]{3,6})`)
	bankRe    = regexp.MustCompile(`\b(hdfc|sbi|icici|axis|kotak|rbl|yes|idfc|idbi|amex|indusind)\b`)
)

// categoryNames maps spoken category words to their display form.
var categoryNames = map[string]string{
	"cashback": "Cashback", "travel": "Travel", "lounge": "Lounge", "fuel": "Fuel",
	"shopping": "Shopping", "online": "Online", "dining": "Dining", "movies": "Movies",
	"groceries": "Groceries", "rewards": "Rewards", "forex": "Forex",
	"international": "International", "airport": "Airport",
}

// ParseProfileHints extracts income, CIBIL, fee ceiling, categories, and
// bank preference from natural text. Parsing is best-effort: anything that
// fails to parse is simply absent from the result.
func ParseProfileHints(text string) Hints {
	t := strings.ToLower(text)
	var h Hints

	if m := incomeRe.FindStringSubmatch(t); m != nil {
		if v, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			h.Income = &v
		}
	}
	if m := cibilRe.FindStringSubmatch(t); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v >= 300 && v <= 900 {
			h.Cibil = &v
		}
	}
	if m := maxFeeRe.FindStringSubmatch(t); m != nil {
		if v, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			h.MaxFee = &v
		}
	}
	h.Categories = matchCategories(t)
	if m := bankRe.FindStringSubmatch(t); m != nil {
		h.Bank = strings.ToUpper(m[1])
	}
	return h
}

// ExtractFilters pulls only the retrieval constraints (bank, fee ceiling,
// categories) out of a query, for queries that carry constraints inline
// rather than in the stored profile.
func ExtractFilters(q string) Hints {
	t := strings.ToLower(q)
	var h Hints

	if m := bankRe.FindStringSubmatch(t); m != nil {
		h.Bank = strings.ToUpper(m[1])
	}
	if m := feeOnlyRe.FindStringSubmatch(t); m != nil {
		if v, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			h.MaxFee = &v
		}
	}
	h.Categories = matchCategories(t)
	return h
}

func matchCategories(lowered string) []string {
	set := make(map[string]bool)
	for word, display := range categoryNames {
		if strings.Contains(lowered, word) {
			set[display] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	cats := make([]string, 0, len(set))
	for c := range set {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

var (
	compareSplitRe = regexp.MustCompile(`(?i)\b(?:vs|versus|compare|with|and)\b`)
	compareNoiseRe = regexp.MustCompile(`(?i)\b(?:credit card|credit|card|the|and|with)\b`)
	spaceRe        = regexp.MustCompile(`\s+`)
)

// ExtractComparePair recovers the two card names from a comparison request
// ("compare A vs B"). ok=false when two plausible names cannot be found.
func ExtractComparePair(q string) (a, b string, ok bool) {
	parts := compareSplitRe.Split(q, -1)
	names := parts[:0]
	for _, p := range parts {
		if p = strings.Trim(p, " ,.-"); p != "" {
			names = append(names, p)
		}
	}
	if len(names) < 2 {
		return "", "", false
	}
	clean := func(name string) string {
		name = compareNoiseRe.ReplaceAllString(name, "")
		return strings.TrimSpace(spaceRe.ReplaceAllString(name, " "))
	}
	a, b = clean(names[len(names)-2]), clean(names[len(names)-1])
	if len(a) < 2 || len(b) < 2 {
		return "", "", false
	}
	return a, b, true
}
