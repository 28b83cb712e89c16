// Package diagram renders a completed analysis report as a Mermaid
// flowchart description for downstream rendering.
package diagram

import (
	"fmt"
	"strings"

	"github.com/mcsdevv/webanalyzer/internal/analyzer"
	"github.com/mcsdevv/webanalyzer/internal/hostfinder"
)

// site is the fixed identifier of the analyzed-website node; every
// category hangs off it.
const site = "website"

// Build renders the report as a line-oriented "graph TD" description: a
// fixed client-to-website root edge, one node per non-empty list category
// with a leaf per detected item, and one descriptive leaf per known scalar
// category. Unknown scalars and hosting sentinels are left out so the
// diagram only shows positive findings. Build never fails; if rendering
// panics the result is an empty string.
func Build(hostname string, report *analyzer.Report) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	if report == nil {
		return ""
	}

	b := &builder{}
	b.sb.WriteString("graph TD\n")
	fmt.Fprintf(&b.sb, "    client[\"Client\"] --> %s[\"%s\"]\n", site, escape(hostname))

	b.list(site, "CSS Frameworks", report.CSSFrameworks)
	b.list(site, "JavaScript Libraries", report.JavascriptLibraries)
	b.list(site, "Marketing", report.MarketingTechnologies)
	b.list(site, "Social Links", report.SocialLinks)

	b.scalar(site, "CMS", report.CMS)
	b.scalar(site, "E-commerce", report.EcommercePlatform)
	b.scalar(site, "Architecture", report.Architecture)
	b.scalar(site, "Server", report.ServerTechnology)
	b.scalar(site, "CDN", report.CDNProvider)

	// The hosting value is already a full "Provider: ..." phrase.
	if h := report.HostingProvider; h != "" && h != hostfinder.ProviderUnavailable && h != hostfinder.ProviderError {
		b.edge(site, h)
	}

	return b.sb.String()
}

// builder accumulates edge lines and hands out node identifiers from one
// monotonic counter, so identifiers never collide within a build.
type builder struct {
	sb strings.Builder
	n  int
}

func (b *builder) next() string {
	b.n++
	return fmt.Sprintf("n%d", b.n)
}

// edge appends one parent-to-child edge and returns the child identifier.
func (b *builder) edge(parent, label string) string {
	id := b.next()
	fmt.Fprintf(&b.sb, "    %s --> %s[\"%s\"]\n", parent, id, escape(label))
	return id
}

// list emits a category node plus one leaf per item; empty categories are
// skipped outright.
func (b *builder) list(parent, title string, items []string) {
	if len(items) == 0 {
		return
	}
	cat := b.edge(parent, title)
	for _, item := range items {
		b.edge(cat, item)
	}
}

// scalar emits a "Title: value" leaf, skipping unknown values.
func (b *builder) scalar(parent, title, value string) {
	if value == "" || value == analyzer.LabelUnknown {
		return
	}
	b.edge(parent, title+": "+value)
}

// escape keeps labels well-formed inside the double-quoted node text.
func escape(label string) string {
	return strings.ReplaceAll(label, `"`, `'`)
}
