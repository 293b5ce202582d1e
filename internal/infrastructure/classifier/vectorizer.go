// Package classifier holds the frozen text-classification artifact: a
// fitted TF-IDF vectorizer paired with a linear label predictor. The
// artifact is produced by training (cmd/train) and consumed read-only
// by the serving path.
package classifier

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vectorizer maps text onto sparse TF-IDF features over a bounded,
// stop-word-free vocabulary. Fields are exported for gob.
type Vectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
}

// FitVectorizer builds the vocabulary from the corpus, keeping at most
// maxFeatures terms ranked by corpus frequency (ties alphabetical, so
// fitting is deterministic).
func FitVectorizer(texts []string, maxFeatures int) *Vectorizer {
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, text := range texts {
		tokens := tokenize(text)
		seen := make(map[string]bool, len(tokens))
		for _, token := range tokens {
			corpusFreq[token]++
			if !seen[token] {
				docFreq[token]++
				seen[token] = true
			}
		}
	}

	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
	}
	n := float64(len(texts))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// Smoothed IDF, same shape as the usual TF-IDF formulation.
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return v
}

// Transform maps text onto an L2-normalized sparse TF-IDF vector keyed
// by vocabulary index. Out-of-vocabulary tokens are dropped.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	features := make(map[int]float64)
	for _, token := range tokenize(text) {
		idx, ok := v.Vocabulary[token]
		if !ok {
			continue
		}
		features[idx]++
	}
	var norm float64
	for idx := range features {
		features[idx] *= v.IDF[idx]
		norm += features[idx] * features[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range features {
			features[idx] /= norm
		}
	}
	return features
}

// Dim is the feature-vector dimensionality.
func (v *Vectorizer) Dim() int {
	return len(v.IDF)
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// single-rune tokens and stop words.
func tokenize(text string) []string {
	out := make([]string, 0, 32)
	var b strings.Builder
	flush := func() {
		if b.Len() > 1 {
			token := b.String()
			if !stopWords[token] {
				out = append(out, token)
			}
		}
		b.Reset()
	}
	for _, r := range text {
		r = unicode.ToLower(r)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return out
}
