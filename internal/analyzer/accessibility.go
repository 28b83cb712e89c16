package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// estimatedContrastRatio is a fixed stand-in; measuring real contrast needs
// rendered styles, which the analyzer never has.
const estimatedContrastRatio = 4.5

var landmarkSelector = "header, nav, main, section, article, aside, footer"

// extractAccessibility runs the heuristic accessibility checks. The
// "every ..." checks are vacuously true on pages without the element in
// question; transcript presence is approximated by an immediate <p>
// sibling after each audio or video element.
func extractAccessibility(doc *goquery.Document) AccessibilityInfo {
	info := AccessibilityInfo{
		SemanticLandmarks:      false,
		AltTextForImages:       true,
		DescriptiveLinkText:    true,
		AudioTranscripts:       true,
		VideoTranscripts:       true,
		EstimatedContrastRatio: estimatedContrastRatio,
	}
	if doc == nil {
		return info
	}

	info.SemanticLandmarks = doc.Find(landmarkSelector).Length() > 0
	info.LanguageAttribute = doc.Find("html").AttrOr("lang", "")

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr("alt", "") == "" {
			info.AltTextForImages = false
		}
	})

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == "" {
			info.DescriptiveLinkText = false
		}
	})

	info.AudioTranscripts = followedByParagraph(doc, "audio")
	info.VideoTranscripts = followedByParagraph(doc, "video")

	return info
}

// followedByParagraph reports whether every element matching tag has an
// immediately following <p> element sibling.
func followedByParagraph(doc *goquery.Document, tag string) bool {
	ok := true
	doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s.Next()) != "p" {
			ok = false
		}
	})
	return ok
}
