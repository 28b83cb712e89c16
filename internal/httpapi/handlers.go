package httpapi

import (
	"context"
	"net/http"

	"github.com/mcsdevv/webanalyzer/internal/httpclient"
	"github.com/mcsdevv/webanalyzer/internal/service"
)

// Analyzer is the service contract the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*service.Result, *httpclient.FetchError)
}

// analyzeRequest is the JSON request body for /api/analyze.
type analyzeRequest struct {
	URL string `json:"url"`
}

// analyzeHandler handles POST requests to /api/analyze. The URL is
// validated before any network activity; fetch failures map to an
// {"error": message} payload whose status depends on the failure kind.
func analyzeHandler(svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}

		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "URL is required")
			return
		}

		result, fetchErr := svc.Analyze(r.Context(), req.URL)
		if fetchErr != nil {
			writeError(w, statusForFetchError(fetchErr), fetchErr.Message)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// statusForFetchError maps fetch failure kinds to response codes: client
// input problems are 400s, upstream failures 502s, everything else 500.
func statusForFetchError(err *httpclient.FetchError) int {
	switch err.Kind {
	case httpclient.KindInvalidInput:
		return http.StatusBadRequest
	case httpclient.KindHTTP, httpclient.KindConnectivity:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
