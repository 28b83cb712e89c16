package hostfinder

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcsdevv/webanalyzer/internal/config"
	"github.com/mcsdevv/webanalyzer/internal/logging"
)

func newTestClient(t *testing.T, baseURL, apiKey string) *Client {
	t.Helper()

	cfg := config.NewDefault().HostFinder
	cfg.BaseURL = baseURL
	cfg.APIKey = apiKey
	cfg.RateLimit = 1000
	cfg.RateBurst = 1000
	return New(cfg, logging.Nop())
}

func TestLookupSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "example.com", r.URL.Query().Get("url"))
		fmt.Fprint(w, `{"result":{"code":200},"results":[{"isp_name":"Amazon Technologies Inc."},{"isp_name":"Other"}]}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "secret")
	got := client.Lookup(context.Background(), "example.com")
	assert.Equal(t, "Provider: Amazon Technologies Inc.", got)
}

func TestLookupAPIFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "non-200 result code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"result":{"code":403},"results":[]}`)
			},
			want: ProviderUnavailable,
		},
		{
			name: "empty results list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"result":{"code":200},"results":[]}`)
			},
			want: ProviderUnavailable,
		},
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			want: ProviderError,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"result":`)
			},
			want: ProviderError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(t, server.URL, "secret")
			assert.Equal(t, tt.want, client.Lookup(context.Background(), "example.com"))
		})
	}
}

func TestLookupUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := newTestClient(t, baseURL, "secret")
	assert.Equal(t, ProviderError, client.Lookup(context.Background(), "example.com"))
}

func TestLookupWithoutAPIKey(t *testing.T) {
	t.Parallel()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	got := client.Lookup(context.Background(), "example.com")

	require.Equal(t, ProviderUnavailable, got)
	assert.False(t, called, "lookup without API key must not call the API")
}
