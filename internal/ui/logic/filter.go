package logic

import (
	"strings"

	"picbrowse/internal/domain"
)

// SearchFilter matches entries against a tokenized search query
type SearchFilter struct {
	query string
	words []string
}

// NewSearchFilter creates a filter for the query
func NewSearchFilter(query string) *SearchFilter {
	return &SearchFilter{
		query: query,
		words: Tokenize(query),
	}
}

// Query returns the raw query text
func (sf *SearchFilter) Query() string {
	return sf.query
}

// Words returns the lowercase search words
func (sf *SearchFilter) Words() []string {
	return sf.words
}

// Empty reports whether the filter matches everything
func (sf *SearchFilter) Empty() bool {
	return len(sf.words) == 0
}

// Tokenize splits a query into lowercase words. Non-breaking spaces separate words too.
func Tokenize(query string) []string {
	query = strings.ReplaceAll(query, "\u00a0", " ")
	return strings.Fields(strings.ToLower(query))
}

// Matches checks if every word occurs in the entry's name, its group label,
// or the payload of a command entry
func (sf *SearchFilter) Matches(entry *domain.Entry) bool {
	if sf.Empty() {
		return true
	}

	name := strings.ToLower(entry.DisplayName)
	group := strings.ToLower(entry.Group)
	payload := strings.ToLower(entry.CommandPayload())

	for _, w := range sf.words {
		if strings.Contains(name, w) || strings.Contains(group, w) {
			continue
		}
		if payload != "" && strings.Contains(payload, w) {
			continue
		}
		return false
	}
	return true
}

// Apply recomputes MatchesSearch on every entry and returns how many matched
func (sf *SearchFilter) Apply(entries []*domain.Entry) int {
	n := 0
	for _, e := range entries {
		e.MatchesSearch = sf.Matches(e)
		if e.MatchesSearch {
			n++
		}
	}
	return n
}
