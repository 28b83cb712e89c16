package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/mcsdevv/webanalyzer/internal/config"
)

// Page holds the fully fetched primary document for one analysis run.
type Page struct {
	URL        string        // URL as requested
	FinalURL   string        // URL after redirects
	StatusCode int           // terminal status
	Headers    http.Header   // response headers of the final hop
	Body       string        // response body, capped at MaxBodyBytes
	Elapsed    time.Duration // wall-clock time for the whole fetch
}

// Client performs the primary page fetch and the auxiliary probes.
// The main client handles redirects manually so the hop count can be
// bounded; the prober follows redirects automatically since only the
// terminal status matters there.
type Client struct {
	httpClient *http.Client
	prober     *http.Client
	cfg        config.FetcherConfig
	logger     *zap.Logger
}

// NewClient creates a client from fetcher configuration.
func NewClient(cfg config.FetcherConfig, logger *zap.Logger) *Client {
	transport := NewTransport(cfg.TLSVerify)
	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		prober: &http.Client{
			Transport: transport,
			Timeout:   cfg.ProbeTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch retrieves rawURL with a browser-like identity, following up to
// MaxRedirects redirects. Any failure is returned as a *FetchError; a
// non-nil Page is returned only for a terminal 2xx response.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Page, *FetchError) {
	startTime := time.Now()

	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, invalidInput("invalid URL format")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, invalidInput("URL must use http or https")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	currentURL := rawURL
	redirectCount := 0

	for {
		resp, err := c.get(ctx, currentURL)
		if err != nil {
			return nil, classify(err)
		}

		// Redirects are followed manually so the hop count stays bounded.
		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			location := resp.Header.Get("Location")
			if location == "" {
				drain(resp)
				return nil, httpStatus(resp.StatusCode)
			}

			redirectCount++
			if redirectCount > c.cfg.MaxRedirects {
				drain(resp)
				return nil, &FetchError{
					Kind:    KindHTTP,
					Status:  resp.StatusCode,
					Message: fmt.Sprintf("too many redirects (max: %d)", c.cfg.MaxRedirects),
				}
			}

			locationURL, err := url.Parse(location)
			if err != nil {
				drain(resp)
				return nil, invalidInput("invalid redirect location")
			}
			currentParsed, _ := url.Parse(currentURL)
			currentURL = currentParsed.ResolveReference(locationURL).String()
			drain(resp)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			drain(resp)
			return nil, httpStatus(resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes))
		resp.Body.Close()
		if err != nil {
			return nil, classify(err)
		}

		page := &Page{
			URL:        rawURL,
			FinalURL:   currentURL,
			StatusCode: resp.StatusCode,
			Headers:    resp.Header,
			Body:       string(body),
			Elapsed:    time.Since(startTime),
		}
		c.logger.Debug("page fetched",
			zap.String("url", rawURL),
			zap.String("final_url", currentURL),
			zap.Int("status", resp.StatusCode),
			zap.Int("redirects", redirectCount),
			zap.Duration("elapsed", page.Elapsed))
		return page, nil
	}
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	return c.httpClient.Do(req)
}

// drain discards the body so the connection can be reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
