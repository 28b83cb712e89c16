package httpclient

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Placeholder values surfaced when the best-effort probes fail. Probe
// failures never fail an analysis.
const (
	RobotsUnavailable  = "unable to fetch robots.txt"
	SitemapUnavailable = "unable to find sitemap"
)

// robotsMaxBytes caps stored robots.txt content.
const robotsMaxBytes = 64 * 1024

// sitemapCandidates is the fixed probe order; the first candidate that
// answers below 400 wins.
var sitemapCandidates = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap1.xml",
	"/sitemap-index.xml",
}

// FetchRobotsTxt retrieves <origin>/robots.txt, returning its content or
// the RobotsUnavailable placeholder.
func (c *Client) FetchRobotsTxt(ctx context.Context, origin string) string {
	body, status, err := c.probe(ctx, origin+"/robots.txt")
	if err != nil || status >= 400 {
		c.logger.Debug("robots.txt not available",
			zap.String("origin", origin),
			zap.Int("status", status),
			zap.Error(err))
		return RobotsUnavailable
	}
	if body == "" {
		return RobotsUnavailable
	}
	return body
}

// FindSitemap probes the sitemap candidates in fixed order and returns the
// absolute URL of the first reachable one, or the SitemapUnavailable
// placeholder when none answers.
func (c *Client) FindSitemap(ctx context.Context, origin string) string {
	for _, path := range sitemapCandidates {
		candidate := origin + path
		_, status, err := c.probe(ctx, candidate)
		if err == nil && status < 400 {
			return candidate
		}
	}
	return SitemapUnavailable
}

// probe issues one bounded GET through the redirect-following prober.
func (c *Client) probe(ctx context.Context, rawURL string) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.prober.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, robotsMaxBytes))
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(body), resp.StatusCode, nil
}
