package analyzer

import (
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Predicate reports whether one detection rule fires against a fetched
// page. Predicates are pure and read-only; they never touch the network.
type Predicate func(html string, doc *goquery.Document, headers http.Header) bool

// Rule pairs a technology label with its predicate. Each category keeps its
// rules in a fixed order: for single-match categories the first firing rule
// wins, so ordering is a deliberate tie-break, not cosmetic.
type Rule struct {
	Label string
	Match Predicate
}

// matchAny builds the standard keyword-style predicate: the rule fires if
// the raw HTML contains any keyword as a case-sensitive substring, or any
// of the CSS-selector probes matches at least one node.
func matchAny(keywords []string, selectors ...string) Predicate {
	return func(html string, doc *goquery.Document, _ http.Header) bool {
		for _, kw := range keywords {
			if strings.Contains(html, kw) {
				return true
			}
		}
		if doc == nil {
			return false
		}
		for _, sel := range selectors {
			if doc.Find(sel).Length() > 0 {
				return true
			}
		}
		return false
	}
}

// headerContains builds a predicate over response headers; the comparison
// is case-insensitive on the value since servers vary their casing.
func headerContains(name, substr string) Predicate {
	return func(_ string, _ *goquery.Document, headers http.Header) bool {
		return strings.Contains(strings.ToLower(headers.Get(name)), strings.ToLower(substr))
	}
}

// anyOf combines predicates into one that fires when any of them does.
func anyOf(predicates ...Predicate) Predicate {
	return func(html string, doc *goquery.Document, headers http.Header) bool {
		for _, p := range predicates {
			if p(html, doc, headers) {
				return true
			}
		}
		return false
	}
}

// cssFrameworkRules is a multi-match table: every firing rule is reported.
var cssFrameworkRules = []Rule{
	{Label: "Bootstrap", Match: matchAny([]string{"bootstrap"}, `link[href*="bootstrap"]`, `script[src*="bootstrap"]`)},
	{Label: "Tailwind CSS", Match: matchAny([]string{"tailwind"}, `link[href*="tailwind"]`)},
	{Label: "Bulma", Match: matchAny([]string{"bulma"}, `link[href*="bulma"]`)},
	{Label: "Foundation", Match: matchAny([]string{"foundation.min.css"}, `link[href*="foundation"]`)},
	{Label: "Materialize", Match: matchAny([]string{"materialize"}, `link[href*="materialize"]`)},
	{Label: "Semantic UI", Match: matchAny([]string{"semantic-ui"}, `link[href*="semantic-ui"]`, `script[src*="semantic-ui"]`)},
}

// jsLibraryRules is a multi-match table.
var jsLibraryRules = []Rule{
	{Label: "React", Match: matchAny([]string{"react"}, `script[src*="react"]`, `[data-reactroot]`)},
	{Label: "Vue.js", Match: matchAny([]string{"vue.js", "vue.min.js", "__vue__"}, `script[src*="vue"]`)},
	{Label: "Angular", Match: matchAny([]string{"angular"}, `script[src*="angular"]`, `[ng-version]`)},
	{Label: "jQuery", Match: matchAny([]string{"jquery"}, `script[src*="jquery"]`)},
	{Label: "Next.js", Match: matchAny([]string{"__NEXT_DATA__"}, `script[src*="/_next/"]`)},
	{Label: "Nuxt", Match: matchAny([]string{"__NUXT__"}, `script[src*="nuxt"]`)},
	{Label: "Svelte", Match: matchAny([]string{"svelte"}, `script[src*="svelte"]`)},
	{Label: "Alpine.js", Match: matchAny([]string{"alpinejs", "x-data="}, `script[src*="alpine"]`)},
}

// marketingRules is a multi-match table keyed on the loader snippets and
// script hosts the vendors publish.
var marketingRules = []Rule{
	{Label: "Google Analytics", Match: matchAny([]string{"google-analytics.com", "gtag("}, `script[src*="google-analytics"]`, `script[src*="gtag/js"]`)},
	{Label: "Google Tag Manager", Match: matchAny([]string{"googletagmanager.com"}, `script[src*="googletagmanager"]`)},
	{Label: "Facebook Pixel", Match: matchAny([]string{"connect.facebook.net", "fbq("}, `script[src*="connect.facebook.net"]`)},
	{Label: "Hotjar", Match: matchAny([]string{"hotjar"}, `script[src*="hotjar"]`)},
	{Label: "HubSpot", Match: matchAny([]string{"hs-scripts.com", "hubspot"}, `script[src*="hs-scripts"]`)},
	{Label: "Mailchimp", Match: matchAny([]string{"list-manage.com", "chimpstatic"}, `script[src*="chimpstatic"]`)},
	{Label: "Segment", Match: matchAny([]string{"cdn.segment.com", "analytics.load("}, `script[src*="segment.com"]`)},
	{Label: "Intercom", Match: matchAny([]string{"widget.intercom.io", "intercomSettings"}, `script[src*="intercom"]`)},
}

// socialRules is a multi-match table probing anchor hrefs only.
var socialRules = []Rule{
	{Label: "Facebook", Match: matchAny(nil, `a[href*="facebook.com"]`)},
	{Label: "X (Twitter)", Match: matchAny(nil, `a[href*="twitter.com"]`)},
	{Label: "Instagram", Match: matchAny(nil, `a[href*="instagram.com"]`)},
	{Label: "LinkedIn", Match: matchAny(nil, `a[href*="linkedin.com"]`)},
	{Label: "YouTube", Match: matchAny(nil, `a[href*="youtube.com"]`)},
	{Label: "TikTok", Match: matchAny(nil, `a[href*="tiktok.com"]`)},
	{Label: "GitHub", Match: matchAny(nil, `a[href*="github.com"]`)},
}

// cmsRules is a single-match table: the first firing rule names the CMS.
var cmsRules = []Rule{
	{Label: "WordPress", Match: matchAny([]string{"wp-content", "wp-includes"}, `meta[name="generator"][content*="WordPress"]`, `link[href*="wp-content"]`)},
	{Label: "Drupal", Match: matchAny([]string{"Drupal.settings", "/sites/default/files"}, `meta[name="generator"][content*="Drupal"]`, `[data-drupal-selector]`)},
	{Label: "Joomla", Match: matchAny([]string{"/media/jui/", "com_content"}, `meta[name="generator"][content*="Joomla"]`)},
	{Label: "Ghost", Match: matchAny([]string{"ghost-sdk", "/ghost/"}, `meta[name="generator"][content*="Ghost"]`)},
	{Label: "Wix", Match: matchAny([]string{"wix.com", "wixstatic"}, `meta[name="generator"][content*="Wix"]`)},
	{Label: "Squarespace", Match: matchAny([]string{"squarespace"}, `meta[name="generator"][content*="Squarespace"]`)},
	{Label: "Webflow", Match: matchAny([]string{"webflow"}, `meta[name="generator"][content*="Webflow"]`, `html[data-wf-site]`)},
	{Label: "Contentful", Match: matchAny([]string{"contentful"}, `script[src*="contentful"]`)},
}

// ecommerceRules is a single-match table.
var ecommerceRules = []Rule{
	{Label: "Shopify", Match: matchAny([]string{"cdn.shopify.com", "Shopify.theme"}, `link[href*="shopify"]`, `script[src*="shopify"]`)},
	{Label: "WooCommerce", Match: matchAny([]string{"woocommerce"}, `link[href*="woocommerce"]`)},
	{Label: "Magento", Match: matchAny([]string{"Mage.Cookies", "/skin/frontend/"}, `script[src*="mage"]`)},
	{Label: "BigCommerce", Match: matchAny([]string{"bigcommerce"}, `script[src*="bigcommerce"]`)},
	{Label: "PrestaShop", Match: matchAny([]string{"prestashop"}, `meta[name="generator"][content*="PrestaShop"]`)},
	{Label: "Salesforce Commerce", Match: matchAny([]string{"demandware"}, `script[src*="demandware"]`)},
}

// serverRules is a single-match table over response headers.
var serverRules = []Rule{
	{Label: "Nginx", Match: headerContains("Server", "nginx")},
	{Label: "Apache", Match: headerContains("Server", "apache")},
	{Label: "Microsoft IIS", Match: headerContains("Server", "microsoft-iis")},
	{Label: "LiteSpeed", Match: headerContains("Server", "litespeed")},
	{Label: "Caddy", Match: headerContains("Server", "caddy")},
	{Label: "Express", Match: headerContains("X-Powered-By", "express")},
	{Label: "Next.js", Match: headerContains("X-Powered-By", "next.js")},
	{Label: "PHP", Match: headerContains("X-Powered-By", "php")},
	{Label: "ASP.NET", Match: headerContains("X-Powered-By", "asp.net")},
}

// architectureRules is a decision list evaluated top to bottom; pages with
// none of the markers fall back to the multi-page default.
var architectureRules = []Rule{
	{Label: "SSR", Match: matchAny([]string{"__NEXT_DATA__"}, `script[src*="/_next/"]`)},
	{Label: "SSG", Match: matchAny([]string{"___gatsby"}, `#___gatsby`)},
	{Label: "SSG", Match: matchAny(nil, `meta[name="generator"][content*="Hugo"]`)},
	{Label: "SSG", Match: matchAny(nil, `meta[name="generator"][content*="Jekyll"]`)},
	{Label: "SPA", Match: anyOf(
		matchAny([]string{"__INITIAL_STATE__"}, `[data-reactroot]`),
		matchAny(nil, `script[src*="react"]`),
		matchAny(nil, `script[src*="vue"]`),
		matchAny(nil, `[ng-version]`),
	)},
}

// architectureDefault is the fallback when no marker fires.
const architectureDefault = "MPA"
