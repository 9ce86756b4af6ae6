package lexical

import "math"

// BM25 Okapi parameters. k1 controls term-frequency saturation, b controls
// document length normalization. epsilon floors negative IDF values for
// terms present in most documents (Okapi IDF can go negative, unlike the
// Lucene variant) at epsilon times the corpus-average IDF; the floor's
// sign follows that average.
const (
	bm25K1      = 1.5
	bm25B       = 0.75
	bm25Epsilon = 0.25
)

// Index holds the BM25 statistics for one document corpus. Immutable after
// Build and safe for concurrent readers.
type Index struct {
	termFreqs []map[string]int
	docLens   []int
	avgDocLen float64
	idf       map[string]float64
}

// Build constructs an Index from pre-tokenized documents. An empty corpus
// yields a valid empty index whose Scores are always empty.
func Build(docs [][]string) *Index {
	ix := &Index{idf: make(map[string]float64)}
	if len(docs) == 0 {
		return ix
	}

	df := make(map[string]int)
	totalLen := 0

	ix.termFreqs = make([]map[string]int, len(docs))
	ix.docLens = make([]int, len(docs))
	for i, doc := range docs {
		tf := make(map[string]int, len(doc))
		for _, term := range doc {
			tf[term]++
		}
		ix.termFreqs[i] = tf
		ix.docLens[i] = len(doc)
		totalLen += len(doc)
		for term := range tf {
			df[term]++
		}
	}
	ix.avgDocLen = float64(totalLen) / float64(len(docs))

	// Okapi IDF: ln((N - df + 0.5) / (df + 0.5)). Terms in more than half
	// the corpus get a negative value; those are set to epsilon times the
	// average IDF over all terms, negatives included.
	n := float64(len(docs))
	var idfSum float64
	var negative []string
	for term, freq := range df {
		idf := math.Log((n - float64(freq) + 0.5) / (float64(freq) + 0.5))
		ix.idf[term] = idf
		idfSum += idf
		if idf < 0 {
			negative = append(negative, term)
		}
	}
	floor := bm25Epsilon * idfSum / float64(len(ix.idf))
	for _, term := range negative {
		ix.idf[term] = floor
	}

	return ix
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.termFreqs) }

// Scores computes the BM25 score of the query tokens against every indexed
// document, in document order. Unknown query terms contribute zero.
func (ix *Index) Scores(query []string) []float64 {
	scores := make([]float64, len(ix.termFreqs))
	if len(ix.termFreqs) == 0 || ix.avgDocLen == 0 {
		return scores
	}
	for _, term := range query {
		idf, ok := ix.idf[term]
		if !ok {
			continue
		}
		for i, tf := range ix.termFreqs {
			freq := float64(tf[term])
			if freq == 0 {
				continue
			}
			norm := 1 - bm25B + bm25B*float64(ix.docLens[i])/ix.avgDocLen
			scores[i] += idf * freq * (bm25K1 + 1) / (freq + bm25K1*norm)
		}
	}
	return scores
}
