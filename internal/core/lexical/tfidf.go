package lexical

import (
	"math"
	"strings"
)

// TFIDF is an immutable term-frequency index over an ordered document set.
// Terms are lower-cased tokens with English stop words removed.
type TFIDF struct {
	terms []map[string]int
	df    map[string]int
}

// NewTFIDF builds an index over docs. Document i of the index is docs[i].
func NewTFIDF(docs []string) *TFIDF {
	idx := &TFIDF{
		terms: make([]map[string]int, len(docs)),
		df:    make(map[string]int),
	}
	for i, d := range docs {
		counts := make(map[string]int)
		for _, t := range indexTerms(d) {
			counts[t]++
		}
		for t := range counts {
			idx.df[t]++
		}
		idx.terms[i] = counts
	}
	return idx
}

// Len returns the number of indexed documents.
func (x *TFIDF) Len() int {
	return len(x.terms)
}

// IDF returns 1 + ln(N / (1 + df)) for term.
// A term in every document can score below one, or below zero on tiny corpora.
func (x *TFIDF) IDF(term string) float64 {
	return 1 + math.Log(float64(len(x.terms))/float64(1+x.df[term]))
}

// Weight returns the TF-IDF weight of query against document i:
// the sum over query terms of raw term count times IDF.
// Repeated query terms contribute once per repetition.
func (x *TFIDF) Weight(query string, i int) float64 {
	if i < 0 || i >= len(x.terms) {
		return 0
	}
	var w float64
	for _, t := range indexTerms(query) {
		tf := x.terms[i][t]
		if tf == 0 {
			continue
		}
		w += float64(tf) * x.IDF(t)
	}
	return w
}

// Weights returns Weight(query, i) for every document, in index order.
func (x *TFIDF) Weights(query string) []float64 {
	out := make([]float64, len(x.terms))
	terms := indexTerms(query)
	for i := range x.terms {
		for _, t := range terms {
			if tf := x.terms[i][t]; tf > 0 {
				out[i] += float64(tf) * x.IDF(t)
			}
		}
	}
	return out
}

func indexTerms(s string) []string {
	toks := Tokenize(s)
	out := toks[:0]
	for _, t := range toks {
		t = strings.ToLower(t)
		if _, stop := stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at",
		"by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so",
		"such", "into", "about", "between", "through", "during", "before", "after", "above", "below",
		"out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
