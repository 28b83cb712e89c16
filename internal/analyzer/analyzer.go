package analyzer

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/mcsdevv/webanalyzer/internal/httpclient"
)

// Engine runs the signal extractors over one fetched page. It holds no
// per-request state; the rule tables it evaluates are read-only package
// data, so one engine serves all requests.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger.Named("analyzer")}
}

// signalInput is the shared read-only view of the fetched page handed to
// every extractor.
type signalInput struct {
	html    string
	doc     *goquery.Document
	headers http.Header
	elapsed time.Duration
}

// signal is one extractor: a category name plus the function that fills
// that category on the report. Each signal writes only its own field.
type signal struct {
	name string
	run  func(in *signalInput, r *Report)
}

func defaultSignals() []signal {
	return []signal{
		{name: "html_structure", run: func(in *signalInput, r *Report) {
			r.HTMLStructure = tagHistogram(in.doc)
		}},
		{name: "css_frameworks", run: func(in *signalInput, r *Report) {
			r.CSSFrameworks = allMatches(cssFrameworkRules, in.html, in.doc, in.headers)
		}},
		{name: "javascript_libraries", run: func(in *signalInput, r *Report) {
			r.JavascriptLibraries = allMatches(jsLibraryRules, in.html, in.doc, in.headers)
		}},
		{name: "marketing_technologies", run: func(in *signalInput, r *Report) {
			r.MarketingTechnologies = allMatches(marketingRules, in.html, in.doc, in.headers)
		}},
		{name: "social_links", run: func(in *signalInput, r *Report) {
			r.SocialLinks = allMatches(socialRules, in.html, in.doc, in.headers)
		}},
		{name: "cms", run: func(in *signalInput, r *Report) {
			r.CMS = firstMatch(cmsRules, LabelUnknown, in.html, in.doc, in.headers)
		}},
		{name: "ecommerce_platform", run: func(in *signalInput, r *Report) {
			r.EcommercePlatform = firstMatch(ecommerceRules, LabelUnknown, in.html, in.doc, in.headers)
		}},
		{name: "architecture", run: func(in *signalInput, r *Report) {
			r.Architecture = firstMatch(architectureRules, architectureDefault, in.html, in.doc, in.headers)
		}},
		{name: "server_technology", run: func(in *signalInput, r *Report) {
			r.ServerTechnology = firstMatch(serverRules, LabelUnknown, in.html, in.doc, in.headers)
		}},
		{name: "cdn_provider", run: func(in *signalInput, r *Report) {
			r.CDNProvider = detectCDN(in.headers)
		}},
		{name: "security_headers", run: func(in *signalInput, r *Report) {
			r.SecurityHeaders = collectSecurityHeaders(in.headers)
		}},
		{name: "performance_analysis", run: func(in *signalInput, r *Report) {
			r.PerformanceAnalysis = buildPerformance(in.headers, in.elapsed)
		}},
		{name: "seo_analysis", run: func(in *signalInput, r *Report) {
			r.SEOAnalysis = extractSEO(in.doc)
		}},
		{name: "accessibility_analysis", run: func(in *signalInput, r *Report) {
			r.AccessibilityAnalysis = extractAccessibility(in.doc)
		}},
	}
}

// Analyze runs every extractor against the fetched page and returns the
// report with all extraction categories filled. Enrichment categories
// (hosting, DNS, registration, robots, sitemap) keep their defaults here;
// the caller merges those results in.
func (e *Engine) Analyze(page *httpclient.Page) *Report {
	return e.analyze(page, defaultSignals())
}

func (e *Engine) analyze(page *httpclient.Page, signals []signal) *Report {
	report := NewReport()

	in := &signalInput{
		html:    page.Body,
		headers: page.Headers,
		elapsed: page.Elapsed,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		// Selector probes are skipped; substring and header rules still run.
		report.DegradedSignals["html_parsing"] = err.Error()
		e.logger.Warn("html parse failed",
			zap.String("url", page.URL),
			zap.Error(err))
	} else {
		in.doc = doc
	}

	// Extractors are pure over the shared input and each writes a distinct
	// report field, so they run concurrently without coordination beyond
	// the degradation map.
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, sig := range signals {
		wg.Add(1)
		go func(sig signal) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					mu.Lock()
					report.DegradedSignals[sig.name] = fmt.Sprintf("%v", rec)
					mu.Unlock()
					e.logger.Error("signal degraded",
						zap.String("url", page.URL),
						zap.String("signal", sig.name),
						zap.Any("reason", rec))
				}
			}()
			sig.run(in, report)
		}(sig)
	}
	wg.Wait()

	return report
}
