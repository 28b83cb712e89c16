package analyzer

import (
	"github.com/mcsdevv/webanalyzer/internal/dnsinfo"
	"github.com/mcsdevv/webanalyzer/internal/hostfinder"
	"github.com/mcsdevv/webanalyzer/internal/httpclient"
	"github.com/mcsdevv/webanalyzer/internal/whoisinfo"
)

// LabelUnknown is the fallback for single-match categories.
const LabelUnknown = "Unknown"

// Report is the flat analysis result. Every key is always present: a failed
// or empty signal keeps its key with the category's empty value, and the
// failure reason lands in DegradedSignals.
type Report struct {
	HTMLStructure         map[string]int         `json:"html_structure"`
	CSSFrameworks         []string               `json:"css_frameworks"`
	JavascriptLibraries   []string               `json:"javascript_libraries"`
	MarketingTechnologies []string               `json:"marketing_technologies"`
	SocialLinks           []string               `json:"social_links"`
	CMS                   string                 `json:"cms"`
	EcommercePlatform     string                 `json:"ecommerce_platform"`
	Architecture          string                 `json:"architecture"`
	ServerTechnology      string                 `json:"server_technology"`
	CDNProvider           string                 `json:"cdn_provider"`
	SecurityHeaders       map[string]string      `json:"security_headers"`
	PerformanceAnalysis   PerformanceInfo        `json:"performance_analysis"`
	SEOAnalysis           SEOInfo                `json:"seo_analysis"`
	AccessibilityAnalysis AccessibilityInfo      `json:"accessibility_analysis"`
	HostingProvider       string                 `json:"hosting_provider"`
	DNSRecords            dnsinfo.Records        `json:"dns_records"`
	DomainRegistration    whoisinfo.Registration `json:"domain_registration"`
	RobotsTxt             string                 `json:"robots_txt"`
	SitemapURL            string                 `json:"sitemap_url"`
	DegradedSignals       map[string]string      `json:"degraded_signals"`
}

// Heading is one h1-h6 element in document order.
type Heading struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// SEOInfo carries the on-page SEO fields. Link partitioning is by prefix
// only: internal links start with "/", external links start with "http";
// anchors, mailto and protocol-relative hrefs fall in neither bucket.
type SEOInfo struct {
	MetaTitle       string    `json:"metaTitle"`
	MetaDescription string    `json:"metaDescription"`
	MetaKeywords    string    `json:"metaKeywords"`
	Headings        []Heading `json:"headings"`
	ImageAlts       []string  `json:"imageAlts"`
	InternalLinks   []string  `json:"internalLinks"`
	ExternalLinks   []string  `json:"externalLinks"`
}

// AccessibilityInfo carries heuristic accessibility checks. The contrast
// ratio is a fixed estimate, not a computed value.
type AccessibilityInfo struct {
	SemanticLandmarks      bool    `json:"semanticLandmarks"`
	AltTextForImages       bool    `json:"altTextForImages"`
	DescriptiveLinkText    bool    `json:"descriptiveLinkText"`
	LanguageAttribute      string  `json:"languageAttribute"`
	AudioTranscripts       bool    `json:"audioTranscripts"`
	VideoTranscripts       bool    `json:"videoTranscripts"`
	EstimatedContrastRatio float64 `json:"estimatedContrastRatio"`
}

// PerformanceInfo carries caching headers verbatim plus timing estimates
// derived as fixed fractions of the measured round-trip latency. The
// estimates stand in for real browser metrics and must be read as such.
type PerformanceInfo struct {
	CacheControl    string  `json:"cacheControl"`
	Expires         string  `json:"expires"`
	ETag            string  `json:"etag"`
	ContentEncoding string  `json:"contentEncoding"`
	ResponseTimeMs  int64   `json:"responseTimeMs"`
	EstimatedFCPMs  float64 `json:"estimatedFcpMs"`
	EstimatedLCPMs  float64 `json:"estimatedLcpMs"`
	EstimatedTTFBMs float64 `json:"estimatedTtfbMs"`
	EstimatedFIDMs  float64 `json:"estimatedFidMs"`
}

// NewReport returns a report with every category at its empty value, so a
// degraded signal never leaves a missing key behind.
func NewReport() *Report {
	return &Report{
		HTMLStructure:         map[string]int{},
		CSSFrameworks:         []string{},
		JavascriptLibraries:   []string{},
		MarketingTechnologies: []string{},
		SocialLinks:           []string{},
		CMS:                   LabelUnknown,
		EcommercePlatform:     LabelUnknown,
		Architecture:          LabelUnknown,
		ServerTechnology:      LabelUnknown,
		CDNProvider:           LabelUnknown,
		SecurityHeaders:       emptySecurityHeaders(),
		AccessibilityAnalysis: AccessibilityInfo{EstimatedContrastRatio: estimatedContrastRatio},
		SEOAnalysis: SEOInfo{
			Headings:      []Heading{},
			ImageAlts:     []string{},
			InternalLinks: []string{},
			ExternalLinks: []string{},
		},
		HostingProvider:    hostfinder.ProviderUnavailable,
		DNSRecords:         dnsinfo.EmptyRecords(),
		DomainRegistration: whoisinfo.EmptyRegistration(),
		RobotsTxt:          httpclient.RobotsUnavailable,
		SitemapURL:         httpclient.SitemapUnavailable,
		DegradedSignals:    map[string]string{},
	}
}
