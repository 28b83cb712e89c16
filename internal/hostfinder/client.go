// Package hostfinder looks up the hosting provider of a hostname through a
// third-party detection API. The lookup is best-effort: every failure mode
// collapses to a sentinel string so the caller's analysis never aborts on
// hosting data.
package hostfinder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mcsdevv/webanalyzer/internal/config"
)

// Sentinels surfaced in place of a provider name. ProviderUnavailable means
// the API answered but had nothing usable; ProviderError means the API
// could not be reached or understood.
const (
	ProviderUnavailable = "unable to find provider"
	ProviderError       = "Host Finder Error"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client calls the hosting-detection API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// envelope is the API response: an inner result code plus a list of
// detected providers.
type envelope struct {
	Result struct {
		Code int `json:"code"`
	} `json:"result"`
	Results []struct {
		ISPName string `json:"isp_name"`
	} `json:"results"`
}

// New creates a client. An empty API key is allowed; lookups then resolve
// to ProviderUnavailable without any outbound call.
func New(cfg config.HostFinderConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		logger:  logger.Named("hostfinder"),
	}
}

// Lookup resolves hostname to a "Provider: <name>" string, or a sentinel.
// It never returns an error: hosting data is enrichment, not a requirement.
func (c *Client) Lookup(ctx context.Context, hostname string) string {
	if c.apiKey == "" {
		c.logger.Debug("no API key configured, skipping lookup",
			zap.String("hostname", hostname))
		return ProviderUnavailable
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.Warn("rate limiter wait aborted",
			zap.String("hostname", hostname),
			zap.Error(err))
		return ProviderError
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		c.logger.Warn("request construction failed",
			zap.String("hostname", hostname),
			zap.Error(err))
		return ProviderError
	}
	q := req.URL.Query()
	q.Add("key", c.apiKey)
	q.Add("url", hostname)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("hosting API unreachable",
			zap.String("hostname", hostname),
			zap.Error(err))
		return ProviderError
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("hosting API returned error status",
			zap.String("hostname", hostname),
			zap.Int("status", resp.StatusCode))
		return ProviderError
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.logger.Warn("hosting API response malformed",
			zap.String("hostname", hostname),
			zap.Error(err))
		return ProviderError
	}

	if env.Result.Code != 200 || len(env.Results) == 0 {
		c.logger.Debug("hosting API had no result",
			zap.String("hostname", hostname),
			zap.Int("result_code", env.Result.Code),
			zap.Int("results", len(env.Results)))
		return ProviderUnavailable
	}

	return fmt.Sprintf("Provider: %s", env.Results[0].ISPName)
}
