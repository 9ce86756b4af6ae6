// Package card defines the normalized credit-card record shared by all layers.
package card

import (
	"strconv"
	"strings"
)

// columnAliases maps every accepted source column header to its canonical
// field name. Two historical header schemes exist in the wild: title-cased
// ("Card Name") and snake_cased ("card_name"). Normalization happens once at
// ingestion; the rest of the pipeline only sees canonical fields.
var columnAliases = map[string]string{
	"Bank Name":    "bank_name",
	"bank_name":    "bank_name",
	"Card Name":    "card_name",
	"card_name":    "card_name",
	"Card Type":    "card_type",
	"card_type":    "card_type",
	"Annual Fee":   "annual_fee",
	"annual_fee":   "annual_fee",
	"Key Benefits": "key_benefits",
	"key_benefits": "key_benefits",
	"Description":  "description",
	"description":  "description",
	"Tags":         "tags",
	"tags":         "tags",
	"Eligibility":  "eligibility",
	"eligibility":  "eligibility",
	"Website":      "website",
	"website":      "website",
	"FAQ":          "faq",
	"faq":          "faq",
}

// CanonicalColumn resolves a source column header to its canonical field name.
// Returns ok=false for columns outside the normalized schema.
func CanonicalColumn(header string) (string, bool) {
	name, ok := columnAliases[strings.TrimSpace(header)]
	return name, ok
}

// Record is one normalized dataset row. Every field is a mandatory string;
// missing or null source cells become empty strings at construction, so no
// later stage needs presence checks. Records are immutable after ingestion.
type Record struct {
	BankName    string `json:"bank_name"`
	CardName    string `json:"card_name"`
	CardType    string `json:"card_type"`
	AnnualFee   string `json:"annual_fee"`
	KeyBenefits string `json:"key_benefits"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Eligibility string `json:"eligibility"`
	Website     string `json:"website"`
	FAQ         string `json:"faq"`
}

// FromRow builds a Record from a canonical-field→value map.
// Absent keys default to empty strings.
func FromRow(row map[string]string) Record {
	return Record{
		BankName:    row["bank_name"],
		CardName:    row["card_name"],
		CardType:    row["card_type"],
		AnnualFee:   row["annual_fee"],
		KeyBenefits: row["key_benefits"],
		Description: row["description"],
		Tags:        row["tags"],
		Eligibility: row["eligibility"],
		Website:     row["website"],
		FAQ:         row["faq"],
	}
}

// Document synthesizes the text blob the lexical index scores. Field order
// matches the indexing convention; changing it invalidates cached indexes.
func (r Record) Document() string {
	return strings.Join([]string{
		r.CardName,
		r.Description,
		r.KeyBenefits,
		r.Tags,
		r.Eligibility,
		r.BankName,
		r.CardType,
	}, " ")
}

// Fee parses the annual fee as an integer, stripping thousands separators.
// ok=false means the fee is non-numeric and must be treated as unbounded:
// such rows are excluded from fee-capped queries, included otherwise.
func (r Record) Fee() (int, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(r.AnnualFee, ",", ""))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CategoryText is the lower-cased blob category filters match against.
func (r Record) CategoryText() string {
	return strings.ToLower(strings.Join([]string{r.Tags, r.KeyBenefits, r.Description}, " "))
}

// BonusText is the lower-cased blob keyword bonuses match against.
func (r Record) BonusText() string {
	return strings.ToLower(strings.Join([]string{r.CardName, r.Description, r.KeyBenefits, r.Tags}, " "))
}

// NormalizedName returns the trimmed, lower-cased card name used for
// near-duplicate detection.
func (r Record) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(r.CardName))
}
