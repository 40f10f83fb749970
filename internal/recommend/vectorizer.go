package recommend

import (
	"math"
	"sort"
	"strings"
)

// vectorizer turns documents into l2-normalized tf-idf vectors over a
// vocabulary built from the corpus it was constructed with. It is rebuilt
// fresh per similarity call; there is no persisted index.
type vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// newVectorizer builds the vocabulary and smoothed inverse document
// frequencies from the corpus. Returns nil when no document contributes
// a single term.
func newVectorizer(docs []string) *vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range tokenize(doc) {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}
	if len(df) == 0 {
		return nil
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &vectorizer{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		v.vocab[term] = i
		// Smoothed idf keeps terms present in every document from
		// zeroing out entirely.
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v
}

// transform returns the l2-normalized tf-idf vector for a document.
// Terms outside the vocabulary are ignored.
func (v *vectorizer) transform(doc string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, term := range tokenize(doc) {
		if i, ok := v.vocab[term]; ok {
			vec[i] += v.idf[i]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// cosine returns the similarity of two l2-normalized vectors, which
// reduces to their dot product. Degenerate zero vectors score 0.
func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

func tokenize(doc string) []string {
	return strings.Fields(strings.ToLower(doc))
}
