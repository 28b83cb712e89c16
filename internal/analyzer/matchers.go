package analyzer

import (
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// firstMatch evaluates a single-match rule table in order and returns the
// first firing rule's label, or fallback when nothing fires. Table order is
// the tie-break between overlapping rules.
func firstMatch(rules []Rule, fallback string, html string, doc *goquery.Document, headers http.Header) string {
	for _, rule := range rules {
		if rule.Match(html, doc, headers) {
			return rule.Label
		}
	}
	return fallback
}

// allMatches evaluates a multi-match rule table and returns every firing
// rule's label in table order. The result is never nil so empty categories
// serialize as [] rather than null.
func allMatches(rules []Rule, html string, doc *goquery.Document, headers http.Header) []string {
	matches := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule.Match(html, doc, headers) {
			matches = append(matches, rule.Label)
		}
	}
	return matches
}
