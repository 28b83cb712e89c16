package analyzer

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcsdevv/webanalyzer/internal/httpclient"
	"github.com/mcsdevv/webanalyzer/internal/logging"
)

func newTestEngine() *Engine {
	return NewEngine(logging.Nop())
}

func fakePage(body string, headers http.Header) *httpclient.Page {
	return &httpclient.Page{
		URL:        "https://example.com",
		FinalURL:   "https://example.com",
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       body,
		Elapsed:    100 * time.Millisecond,
	}
}

func TestAnalyzeBlankPageKeepsEveryCategory(t *testing.T) {
	t.Parallel()

	report := newTestEngine().Analyze(fakePage("", nil))

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))

	keys := []string{
		"html_structure", "css_frameworks", "javascript_libraries",
		"marketing_technologies", "social_links", "cms", "ecommerce_platform",
		"architecture", "server_technology", "cdn_provider", "security_headers",
		"performance_analysis", "seo_analysis", "accessibility_analysis",
		"hosting_provider", "dns_records", "domain_registration",
		"robots_txt", "sitemap_url", "degraded_signals",
	}
	for _, key := range keys {
		assert.Contains(t, decoded, key)
	}

	// Empty list categories serialize as [], not null.
	assert.Equal(t, "[]", string(decoded["css_frameworks"]))
	assert.Equal(t, "[]", string(decoded["javascript_libraries"]))
	assert.Equal(t, "[]", string(decoded["marketing_technologies"]))
	assert.Equal(t, "[]", string(decoded["social_links"]))
}

func TestAnalyzeMinimalPage(t *testing.T) {
	t.Parallel()

	const minimal = `<html><head><title>T</title></head><body><img></body></html>`
	report := newTestEngine().Analyze(fakePage(minimal, nil))

	assert.Empty(t, report.CSSFrameworks)
	assert.Empty(t, report.JavascriptLibraries)
	assert.Equal(t, LabelUnknown, report.CMS)
	assert.Equal(t, LabelUnknown, report.EcommercePlatform)
	assert.Equal(t, "MPA", report.Architecture)
	assert.Equal(t, LabelUnknown, report.ServerTechnology)
	assert.Equal(t, LabelUnknown, report.CDNProvider)
	assert.False(t, report.AccessibilityAnalysis.AltTextForImages, "img without alt")
	assert.Equal(t, "T", report.SEOAnalysis.MetaTitle)
	assert.Equal(t, 1, report.HTMLStructure["img"])
	assert.Equal(t, 1, report.HTMLStructure["title"])
	assert.Empty(t, report.DegradedSignals)
}

func TestAnalyzeDetectsStack(t *testing.T) {
	t.Parallel()

	const page = `<html lang="en"><head>
<title>Shop</title>
<meta name="generator" content="WordPress 6.4">
<link rel="stylesheet" href="/themes/app/bootstrap.min.css">
<script src="https://cdn.example.com/jquery-3.7.min.js"></script>
<script src="https://www.googletagmanager.com/gtm.js?id=GTM-X"></script>
</head><body>
<header><h1>Shop</h1></header>
<a href="https://twitter.com/shop">Follow us</a>
<p>Powered by woocommerce deals.</p>
</body></html>`

	headers := http.Header{}
	headers.Set("Server", "nginx/1.24.0")
	headers.Set("Cf-Ray", "8a1b2c3d4e5f-FRA")

	report := newTestEngine().Analyze(fakePage(page, headers))

	assert.Equal(t, []string{"Bootstrap"}, report.CSSFrameworks)
	assert.Contains(t, report.JavascriptLibraries, "jQuery")
	assert.Contains(t, report.MarketingTechnologies, "Google Tag Manager")
	assert.Equal(t, []string{"X (Twitter)"}, report.SocialLinks)
	assert.Equal(t, "WordPress", report.CMS)
	assert.Equal(t, "WooCommerce", report.EcommercePlatform)
	assert.Equal(t, "Nginx", report.ServerTechnology)
	assert.Equal(t, "Cloudflare", report.CDNProvider)
	assert.Equal(t, "en", report.AccessibilityAnalysis.LanguageAttribute)
}

func TestAnalyzeDegradesPerSignal(t *testing.T) {
	t.Parallel()

	engine := newTestEngine()
	signals := append(defaultSignals(), signal{
		name: "exploding_signal",
		run: func(in *signalInput, r *Report) {
			panic("kaput")
		},
	})

	const minimal = `<html><head><title>T</title></head><body></body></html>`
	report := engine.analyze(fakePage(minimal, nil), signals)

	require.Contains(t, report.DegradedSignals, "exploding_signal")
	assert.Equal(t, "kaput", report.DegradedSignals["exploding_signal"])

	// Every other category still carries its value.
	assert.Equal(t, "T", report.SEOAnalysis.MetaTitle)
	assert.Equal(t, LabelUnknown, report.CMS)
	assert.Equal(t, "MPA", report.Architecture)
	assert.NotContains(t, report.DegradedSignals, "seo_analysis")
}

func TestAnalyzeRuleOrderBreaksTies(t *testing.T) {
	t.Parallel()

	// Matches both the WordPress and Drupal rules; WordPress sits earlier
	// in the table so it wins.
	const page = `<html><head></head><body>
<script src="/wp-content/app.js"></script>
<div data-drupal-selector="main">Drupal.settings</div>
</body></html>`

	report := newTestEngine().Analyze(fakePage(page, nil))
	assert.Equal(t, "WordPress", report.CMS)
}
