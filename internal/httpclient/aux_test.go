package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchRobotsTxt(t *testing.T) {
	t.Parallel()

	t.Run("present", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "User-agent: *\nDisallow: /admin\n")
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client := newTestClient(t, nil)
		got := client.FetchRobotsTxt(context.Background(), server.URL)
		assert.Equal(t, "User-agent: *\nDisallow: /admin\n", got)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		client := newTestClient(t, nil)
		got := client.FetchRobotsTxt(context.Background(), server.URL)
		assert.Equal(t, RobotsUnavailable, got)
	})

	t.Run("unreachable origin", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		origin := server.URL
		server.Close()

		client := newTestClient(t, nil)
		got := client.FetchRobotsTxt(context.Background(), origin)
		assert.Equal(t, RobotsUnavailable, got)
	})
}

func TestFindSitemap(t *testing.T) {
	t.Parallel()

	serveAt := func(paths ...string) *httptest.Server {
		mux := http.NewServeMux()
		for _, p := range paths {
			mux.HandleFunc(p, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "<urlset/>")
			})
		}
		return httptest.NewServer(mux)
	}

	t.Run("first candidate wins", func(t *testing.T) {
		t.Parallel()

		server := serveAt("/sitemap.xml", "/sitemap1.xml")
		defer server.Close()

		client := newTestClient(t, nil)
		got := client.FindSitemap(context.Background(), server.URL)
		assert.Equal(t, server.URL+"/sitemap.xml", got)
	})

	t.Run("falls through in fixed order", func(t *testing.T) {
		t.Parallel()

		server := serveAt("/sitemap-index.xml")
		defer server.Close()

		client := newTestClient(t, nil)
		got := client.FindSitemap(context.Background(), server.URL)
		assert.Equal(t, server.URL+"/sitemap-index.xml", got)
	})

	t.Run("none reachable", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		client := newTestClient(t, nil)
		got := client.FindSitemap(context.Background(), server.URL)
		assert.Equal(t, SitemapUnavailable, got)
	})
}
