package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractSEO collects the on-page SEO fields. Headings keep document
// order. The internal/external link partition is a bare prefix check:
// "/" means internal, "http" means external, anything else (anchors,
// mailto, protocol-relative) is counted in neither bucket.
func extractSEO(doc *goquery.Document) SEOInfo {
	info := SEOInfo{
		Headings:      []Heading{},
		ImageAlts:     []string{},
		InternalLinks: []string{},
		ExternalLinks: []string{},
	}
	if doc == nil {
		return info
	}

	info.MetaTitle = strings.TrimSpace(doc.Find("title").First().Text())
	info.MetaDescription = doc.Find(`meta[name="description"]`).First().AttrOr("content", "")
	info.MetaKeywords = doc.Find(`meta[name="keywords"]`).First().AttrOr("content", "")

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		info.Headings = append(info.Headings, Heading{
			Level: goquery.NodeName(s),
			Text:  strings.TrimSpace(s.Text()),
		})
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		info.ImageAlts = append(info.ImageAlts, s.AttrOr("alt", ""))
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		switch {
		case strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//"):
			info.InternalLinks = append(info.InternalLinks, href)
		case strings.HasPrefix(href, "http"):
			info.ExternalLinks = append(info.ExternalLinks, href)
		}
	})

	return info
}
