package ingest

import "strings"

// MaxNGram is the longest n-gram the extractor produces.
const MaxNGram = 4

// NGrams returns the contiguous n-grams of tokens joined by a single space.
// It returns nil when n is outside 1..MaxNGram or there are fewer than n tokens.
func NGrams(tokens []string, n int) []string {
	if n < 1 || n > MaxNGram || len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	EachNGram(tokens, n, func(gram string) bool {
		out = append(out, gram)
		return true
	})
	return out
}

// EachNGram calls fn for every n-gram in order until fn returns false.
// It holds no state, so it can be called repeatedly over the same tokens.
func EachNGram(tokens []string, n int, fn func(gram string) bool) {
	if n < 1 || n > MaxNGram {
		return
	}
	for i := 0; i+n <= len(tokens); i++ {
		if !fn(strings.Join(tokens[i:i+n], " ")) {
			return
		}
	}
}
