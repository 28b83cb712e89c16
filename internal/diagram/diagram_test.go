package diagram

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcsdevv/webanalyzer/internal/analyzer"
	"github.com/mcsdevv/webanalyzer/internal/hostfinder"
)

func TestBuildEmptyReport(t *testing.T) {
	t.Parallel()

	got := Build("example.com", analyzer.NewReport())

	want := "graph TD\n" +
		"    client[\"Client\"] --> website[\"example.com\"]\n"
	assert.Equal(t, want, got)
}

func TestBuildSmallReport(t *testing.T) {
	t.Parallel()

	report := analyzer.NewReport()
	report.CSSFrameworks = []string{"Bootstrap"}
	report.CMS = "WordPress"

	got := Build("example.com", report)

	want := "graph TD\n" +
		"    client[\"Client\"] --> website[\"example.com\"]\n" +
		"    website --> n1[\"CSS Frameworks\"]\n" +
		"    n1 --> n2[\"Bootstrap\"]\n" +
		"    website --> n3[\"CMS: WordPress\"]\n"
	assert.Equal(t, want, got)
}

func TestBuildFullReport(t *testing.T) {
	t.Parallel()

	report := analyzer.NewReport()
	report.CSSFrameworks = []string{"Bootstrap", "Tailwind CSS"}
	report.JavascriptLibraries = []string{"React", "jQuery"}
	report.MarketingTechnologies = []string{"Google Analytics"}
	report.SocialLinks = []string{"GitHub"}
	report.CMS = "WordPress"
	report.EcommercePlatform = "WooCommerce"
	report.Architecture = "MPA"
	report.ServerTechnology = "Nginx"
	report.CDNProvider = "Cloudflare"
	report.HostingProvider = "Provider: Automattic Inc."

	got := Build("example.com", report)

	assert.True(t, strings.HasPrefix(got, "graph TD\n"))
	assert.Contains(t, got, `client["Client"] --> website["example.com"]`)
	assert.Contains(t, got, `["CSS Frameworks"]`)
	assert.Contains(t, got, `["Tailwind CSS"]`)
	assert.Contains(t, got, `["JavaScript Libraries"]`)
	assert.Contains(t, got, `["CMS: WordPress"]`)
	assert.Contains(t, got, `["E-commerce: WooCommerce"]`)
	assert.Contains(t, got, `["Architecture: MPA"]`)
	assert.Contains(t, got, `["Server: Nginx"]`)
	assert.Contains(t, got, `["CDN: Cloudflare"]`)
	assert.Contains(t, got, `["Provider: Automattic Inc."]`)
}

func TestBuildSkipsUnknownScalars(t *testing.T) {
	t.Parallel()

	report := analyzer.NewReport()
	report.CSSFrameworks = []string{"Bulma"}

	got := Build("example.com", report)

	assert.NotContains(t, got, analyzer.LabelUnknown)
	assert.NotContains(t, got, hostfinder.ProviderUnavailable)
}

func TestBuildSkipsHostingSentinels(t *testing.T) {
	t.Parallel()

	for _, sentinel := range []string{hostfinder.ProviderUnavailable, hostfinder.ProviderError} {
		report := analyzer.NewReport()
		report.HostingProvider = sentinel

		got := Build("example.com", report)

		assert.NotContains(t, got, sentinel)
	}
}

func TestBuildEscapesQuotes(t *testing.T) {
	t.Parallel()

	report := analyzer.NewReport()
	report.CSSFrameworks = []string{`The "Best" Framework`}

	got := Build(`bad"host.example`, report)

	assert.Contains(t, got, `["The 'Best' Framework"]`)
	assert.Contains(t, got, `["bad'host.example"]`)
}

func TestBuildIdentifiersAreUnique(t *testing.T) {
	t.Parallel()

	report := analyzer.NewReport()
	report.CSSFrameworks = []string{"Bootstrap", "Bulma", "Foundation"}
	report.JavascriptLibraries = []string{"React", "Vue.js", "Angular", "jQuery"}
	report.MarketingTechnologies = []string{"Hotjar", "Segment"}
	report.CMS = "Ghost"

	got := Build("example.com", report)

	idDef := regexp.MustCompile(`--> (n\d+)\[`)
	seen := map[string]bool{}
	for _, m := range idDef.FindAllStringSubmatch(got, -1) {
		require.False(t, seen[m[1]], "identifier %s defined twice", m[1])
		seen[m[1]] = true
	}
	assert.Len(t, seen, 13)
}

func TestBuildIsDeterministic(t *testing.T) {
	t.Parallel()

	report := analyzer.NewReport()
	report.JavascriptLibraries = []string{"Svelte", "Alpine.js"}
	report.CDNProvider = "Fastly"

	assert.Equal(t, Build("example.com", report), Build("example.com", report))
}

func TestBuildNilReport(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Build("example.com", nil))
}
