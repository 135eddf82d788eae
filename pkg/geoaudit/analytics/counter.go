package analytics

import (
	"sort"

	"github.com/cognicore/geoaudit/pkg/geoaudit/ingest"
)

// Counter aggregates n-gram occurrence counts and remembers the order in
// which each n-gram was first seen, so rankings break ties deterministically.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// CountNGrams counts the n-grams of tokens.
func CountNGrams(tokens []string, n int) *Counter {
	c := NewCounter()
	ingest.EachNGram(tokens, n, func(gram string) bool {
		c.Add(gram)
		return true
	})
	return c
}

// Add records one occurrence of gram.
func (c *Counter) Add(gram string) {
	if gram == "" {
		return
	}
	if _, ok := c.counts[gram]; !ok {
		c.order = append(c.order, gram)
	}
	c.counts[gram]++
}

// Count returns the occurrences of gram.
func (c *Counter) Count(gram string) int {
	return c.counts[gram]
}

// Len returns the number of distinct grams.
func (c *Counter) Len() int {
	return len(c.order)
}

// Entry is one ranked gram.
type Entry struct {
	Gram  string
	Count int
	First int // position of first occurrence among distinct grams
}

// MostCommon returns up to n entries ordered by count descending, ties in
// first-seen order. n <= 0 returns every entry.
func (c *Counter) MostCommon(n int) []Entry {
	entries := make([]Entry, len(c.order))
	for i, g := range c.order {
		entries[i] = Entry{Gram: g, Count: c.counts[g], First: i}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
