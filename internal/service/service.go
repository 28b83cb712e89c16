// Package service provides the business logic layer for website analysis.
// It sits between the HTTP transport layer and the analyzer/enrichment
// packages.
package service

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mcsdevv/webanalyzer/internal/analyzer"
	"github.com/mcsdevv/webanalyzer/internal/config"
	"github.com/mcsdevv/webanalyzer/internal/diagram"
	"github.com/mcsdevv/webanalyzer/internal/dnsinfo"
	"github.com/mcsdevv/webanalyzer/internal/hostfinder"
	"github.com/mcsdevv/webanalyzer/internal/httpclient"
	"github.com/mcsdevv/webanalyzer/internal/whoisinfo"
)

// Fetcher retrieves the primary page and runs the best-effort auxiliary
// probes. Only Fetch can fail; the probes return placeholder values
// instead of errors.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*httpclient.Page, *httpclient.FetchError)
	FetchRobotsTxt(ctx context.Context, origin string) string
	FindSitemap(ctx context.Context, origin string) string
}

// HostLookup resolves a hostname to a hosting-provider description or a
// sentinel; it never fails the analysis.
type HostLookup interface {
	Lookup(ctx context.Context, hostname string) string
}

// DNSLookup resolves the standard record set for a hostname.
type DNSLookup interface {
	Lookup(ctx context.Context, hostname string) dnsinfo.Records
}

// WhoisLookup resolves domain registration data for a hostname.
type WhoisLookup interface {
	Lookup(hostname string) whoisinfo.Registration
}

// Deps bundles the collaborators an analysis needs.
type Deps struct {
	Fetcher Fetcher
	Engine  *analyzer.Engine
	Hosting HostLookup
	DNS     DNSLookup
	Whois   WhoisLookup
}

// Result is one completed analysis: the aggregated report plus its
// rendered diagram. The json tags match the API response envelope.
type Result struct {
	Report  *analyzer.Report `json:"analysis_results"`
	Diagram string           `json:"architecture_diagram"`
}

// Service orchestrates one analysis per call: fetch the page, run the
// signal extractors, gather the network enrichment, render the diagram.
type Service struct {
	deps    Deps
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a new Service instance.
func New(deps Deps, cfg config.AnalysisConfig, logger *zap.Logger) *Service {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		deps:    deps,
		timeout: timeout,
		logger:  logger.Named("service"),
	}
}

// Analyze runs the whole pipeline for one URL. The primary fetch is the
// only fatal step: its failure aborts the analysis and is returned as the
// single error. Every enrichment call runs concurrently with the fetch
// and degrades to its placeholder value on failure. A fetch failure
// cancels enrichment still in flight, since its results would be
// discarded anyway.
func (s *Service) Analyze(ctx context.Context, rawURL string) (*Result, *httpclient.FetchError) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	s.logger.Info("analysis started", zap.String("url", rawURL))

	hostname, origin := splitTarget(rawURL)

	var (
		page     *httpclient.Page
		fetchErr *httpclient.FetchError
		hosting  = hostfinder.ProviderUnavailable
		robots   = httpclient.RobotsUnavailable
		sitemap  = httpclient.SitemapUnavailable
		records  = dnsinfo.EmptyRecords()
		domain   = whoisinfo.EmptyRegistration()
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, ferr := s.deps.Fetcher.Fetch(gctx, rawURL)
		if ferr != nil {
			fetchErr = ferr
			return ferr
		}
		page = p
		return nil
	})
	if hostname != "" {
		g.Go(func() error {
			hosting = s.deps.Hosting.Lookup(gctx, hostname)
			return nil
		})
		g.Go(func() error {
			robots = s.deps.Fetcher.FetchRobotsTxt(gctx, origin)
			return nil
		})
		g.Go(func() error {
			sitemap = s.deps.Fetcher.FindSitemap(gctx, origin)
			return nil
		})
		g.Go(func() error {
			records = s.deps.DNS.Lookup(gctx, hostname)
			return nil
		})
		g.Go(func() error {
			domain = s.deps.Whois.Lookup(hostname)
			return nil
		})
	}
	_ = g.Wait()

	if fetchErr != nil {
		s.logger.Warn("analysis aborted",
			zap.String("url", rawURL),
			zap.String("kind", string(fetchErr.Kind)),
			zap.String("error", fetchErr.Message))
		return nil, fetchErr
	}

	report := s.deps.Engine.Analyze(page)
	report.HostingProvider = hosting
	report.RobotsTxt = robots
	report.SitemapURL = sitemap
	report.DNSRecords = records
	report.DomainRegistration = domain

	result := &Result{
		Report:  report,
		Diagram: diagram.Build(hostname, report),
	}

	s.logger.Info("analysis completed",
		zap.String("url", rawURL),
		zap.Int("status", page.StatusCode),
		zap.Int("degraded_signals", len(report.DegradedSignals)),
		zap.Duration("elapsed", time.Since(started)))

	return result, nil
}

// splitTarget derives the bare hostname and the scheme://host origin the
// enrichment calls need. Unparseable input yields empty strings; the
// primary fetch reports the real error in that case.
func splitTarget(rawURL string) (hostname, origin string) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "", ""
	}
	return u.Hostname(), u.Scheme + "://" + u.Host
}
