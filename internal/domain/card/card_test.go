package card

import (
	"strings"
	"testing"
)

func TestCanonicalColumn(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Card Name", "card_name", true},
		{"card_name", "card_name", true},
		{"Annual Fee", "annual_fee", true},
		{"annual_fee", "annual_fee", true},
		{"  Bank Name  ", "bank_name", true},
		{"FAQ", "faq", true},
		{"Reward Rate", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := CanonicalColumn(tt.header)
			if ok != tt.ok || got != tt.want {
				t.Errorf("CanonicalColumn(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFromRow_Defaults(t *testing.T) {
	r := FromRow(map[string]string{"card_name": "SuperSaver Gold"})
	if r.CardName != "SuperSaver Gold" {
		t.Errorf("CardName = %q", r.CardName)
	}
	// Every other field defaults to the empty string.
	for name, v := range map[string]string{
		"BankName": r.BankName, "CardType": r.CardType, "AnnualFee": r.AnnualFee,
		"KeyBenefits": r.KeyBenefits, "Description": r.Description, "Tags": r.Tags,
		"Eligibility": r.Eligibility, "Website": r.Website, "FAQ": r.FAQ,
	} {
		if v != "" {
			t.Errorf("%s = %q, want empty", name, v)
		}
	}
}

func TestDocument_FieldOrder(t *testing.T) {
	r := Record{
		BankName:    "SBI",
		CardName:    "Elite",
		CardType:    "Travel",
		KeyBenefits: "lounge access",
		Description: "premium travel card",
		Tags:        "travel",
		Eligibility: "salaried",
	}
	want := "Elite premium travel card lounge access travel salaried SBI Travel"
	if got := r.Document(); got != want {
		t.Errorf("Document() = %q, want %q", got, want)
	}
}

func TestFee(t *testing.T) {
	tests := []struct {
		fee  string
		want int
		ok   bool
	}{
		{"499", 499, true},
		{"1,000", 1000, true},
		{" 2,500 ", 2500, true},
		{"0", 0, true},
		{"N/A", 0, false},
		{"Free", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.fee, func(t *testing.T) {
			r := Record{AnnualFee: tt.fee}
			got, ok := r.Fee()
			if ok != tt.ok || got != tt.want {
				t.Errorf("Fee() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCategoryText_Lowercased(t *testing.T) {
	r := Record{Tags: "Travel", KeyBenefits: "Lounge Access", Description: "CASHBACK on fuel"}
	got := r.CategoryText()
	for _, w := range []string{"travel", "lounge access", "cashback on fuel"} {
		if !strings.Contains(got, w) {
			t.Errorf("CategoryText() = %q, missing %q", got, w)
		}
	}
	if got != strings.ToLower(got) {
		t.Errorf("CategoryText() not lower-cased: %q", got)
	}
}

func TestNormalizedName(t *testing.T) {
	r := Record{CardName: "  SuperSaver Gold "}
	if got := r.NormalizedName(); got != "supersaver gold" {
		t.Errorf("NormalizedName() = %q", got)
	}
}
