package analyzer

import "github.com/PuerkitoBio/goquery"

// tagHistogram counts every element in the document by tag name.
func tagHistogram(doc *goquery.Document) map[string]int {
	counts := map[string]int{}
	if doc == nil {
		return counts
	}
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		counts[goquery.NodeName(s)]++
	})
	return counts
}
