// Package lexical implements the text analysis primitives of the retrieval
// core: tokenization, BM25 indexing, and fuzzy name similarity.
package lexical

import "strings"

// separatorReplacer folds the separators that commonly glue category words
// together ("Fuel/Travel", "no-fee") into plain spaces.
var separatorReplacer = strings.NewReplacer("/", " ", "-", " ")

// Tokenize lower-cases text, normalizes separators, and splits on whitespace.
// Empty tokens are dropped. The same tokenizer must be used for indexing and
// querying; any mismatch silently degrades recall.
func Tokenize(text string) []string {
	return strings.Fields(separatorReplacer.Replace(strings.ToLower(text)))
}
