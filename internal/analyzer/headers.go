package analyzer

import (
	"net/http"
	"strings"
	"time"
)

// securityHeaderNames are the response headers the security signal reports
// on, in report order.
var securityHeaderNames = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Frame-Options",
	"X-Content-Type-Options",
	"Referrer-Policy",
	"Permissions-Policy",
}

const securityHeaderMissing = "missing"

// detectCDN walks a fixed decision list top to bottom. Vendor-specific
// markers outrank the generic passthrough header, so a response carrying
// both an x-amz-cf-id and an x-cdn-provider header reports CloudFront.
func detectCDN(headers http.Header) string {
	switch {
	case headers.Get("Cf-Ray") != "" || strings.Contains(strings.ToLower(headers.Get("Server")), "cloudflare"):
		return "Cloudflare"
	case headers.Get("X-Amz-Cf-Id") != "":
		return "Amazon CloudFront"
	case headers.Get("X-Fastly-Request-Id") != "":
		return "Fastly"
	case headers.Get("X-Akamai-Transformed") != "":
		return "Akamai"
	case strings.Contains(headers.Get("X-Cache"), "HIT"):
		return "CDN detected (cache hit)"
	case headers.Get("X-Cdn-Provider") != "":
		return headers.Get("X-Cdn-Provider")
	default:
		return LabelUnknown
	}
}

// collectSecurityHeaders reports each security header's value, or "missing".
func collectSecurityHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(securityHeaderNames))
	for _, name := range securityHeaderNames {
		if v := headers.Get(name); v != "" {
			out[name] = v
		} else {
			out[name] = securityHeaderMissing
		}
	}
	return out
}

func emptySecurityHeaders() map[string]string {
	return collectSecurityHeaders(http.Header{})
}

// buildPerformance reports cache and encoding headers verbatim plus timing
// estimates derived as fixed fractions of the round-trip latency. Real
// paint and interactivity metrics need a browser; these fractions only give
// the report a consistent, comparable stand-in.
func buildPerformance(headers http.Header, elapsed time.Duration) PerformanceInfo {
	latencyMs := float64(elapsed.Milliseconds())
	return PerformanceInfo{
		CacheControl:    headers.Get("Cache-Control"),
		Expires:         headers.Get("Expires"),
		ETag:            headers.Get("Etag"),
		ContentEncoding: headers.Get("Content-Encoding"),
		ResponseTimeMs:  elapsed.Milliseconds(),
		EstimatedFCPMs:  0.3 * latencyMs,
		EstimatedLCPMs:  0.6 * latencyMs,
		EstimatedTTFBMs: 0.2 * latencyMs,
		EstimatedFIDMs:  0.1 * latencyMs,
	}
}
