// Package query defines the validated retrieval query tuple.
package query

import (
	"fmt"
	"strings"
)

// Search parameter limits.
const (
	// MaxTextLength is the maximum allowed query text length.
	MaxTextLength = 4096
	DefaultTopK   = 10
	MaxTopK       = 100
)

// Params is a validated retrieval query: free text plus optional hard
// constraints. Constructed per call, never persisted.
type Params struct {
	text       string
	bank       string
	maxFee     *int
	categories []string
	topK       int
}

// New validates and normalizes query parameters.
// Defaults: topK=10. Empty category entries are dropped.
func New(text, bank string, maxFee *int, categories []string, topK int) (Params, error) {
	if strings.TrimSpace(text) == "" {
		return Params{}, fmt.Errorf("query text is required")
	}
	if len(text) > MaxTextLength {
		return Params{}, fmt.Errorf("query too long (max %d chars)", MaxTextLength)
	}
	if maxFee != nil && *maxFee < 0 {
		return Params{}, fmt.Errorf("max_fee must be non-negative, got %d", *maxFee)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	var cats []string
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, c)
		}
	}

	return Params{
		text:       text,
		bank:       strings.TrimSpace(bank),
		maxFee:     maxFee,
		categories: cats,
		topK:       topK,
	}, nil
}

// Text returns the free-text query.
func (p *Params) Text() string { return p.text }

// Bank returns the requested bank filter ("" when absent).
func (p *Params) Bank() string { return p.bank }

// HasBank reports whether a bank filter was requested.
func (p *Params) HasBank() bool { return p.bank != "" }

// MaxFee returns the annual fee ceiling (nil when absent).
func (p *Params) MaxFee() *int { return p.maxFee }

// Categories returns the requested category filters.
func (p *Params) Categories() []string { return p.categories }

// TopK returns the number of records to return.
func (p *Params) TopK() int { return p.topK }
