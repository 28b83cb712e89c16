// Package whoisinfo resolves domain-registration data for the report.
// Like the other enrichment lookups it is best-effort: failures leave the
// registration fields at their Unknown values.
package whoisinfo

import (
	"net"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/mcsdevv/webanalyzer/internal/config"
)

// fieldUnknown fills registration fields no lookup could resolve.
const fieldUnknown = "Unknown"

// Registration holds the parsed registration data surfaced in the report.
type Registration struct {
	Registrar   string   `json:"registrar"`
	CreatedDate string   `json:"createdDate"`
	ExpiryDate  string   `json:"expiryDate"`
	UpdatedDate string   `json:"updatedDate"`
	NameServers []string `json:"nameServers"`
	Status      []string `json:"status"`
}

// EmptyRegistration returns a Registration with every field at its
// Unknown/empty value.
func EmptyRegistration() Registration {
	return Registration{
		Registrar:   fieldUnknown,
		CreatedDate: fieldUnknown,
		ExpiryDate:  fieldUnknown,
		UpdatedDate: fieldUnknown,
		NameServers: []string{},
		Status:      []string{},
	}
}

// Client performs whois lookups against the registry chain.
type Client struct {
	fetch  func(domain string) (string, error)
	logger *zap.Logger
}

// New creates a Client from configuration.
func New(cfg config.WhoisConfig, logger *zap.Logger) *Client {
	wc := whois.NewClient()
	if cfg.Timeout > 0 {
		wc.SetTimeout(cfg.Timeout)
	} else {
		wc.SetTimeout(5 * time.Second)
	}
	return &Client{
		fetch:  func(domain string) (string, error) { return wc.Whois(domain) },
		logger: logger.Named("whoisinfo"),
	}
}

// Lookup resolves registration data for hostname. The query targets the
// registrable domain (eTLD+1), so "www.example.com" is looked up as
// "example.com". IP literals and localhost are skipped.
func (c *Client) Lookup(hostname string) Registration {
	reg := EmptyRegistration()
	if hostname == "" || hostname == "localhost" || net.ParseIP(hostname) != nil {
		return reg
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		domain = hostname
	}

	raw, err := c.fetch(domain)
	if err != nil {
		c.logger.Debug("whois query failed",
			zap.String("domain", domain),
			zap.Error(err))
		return reg
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		c.logger.Debug("whois response unparsable",
			zap.String("domain", domain),
			zap.Error(err))
		return reg
	}

	if parsed.Registrar != nil && parsed.Registrar.Name != "" {
		reg.Registrar = parsed.Registrar.Name
	}
	if parsed.Domain != nil {
		if parsed.Domain.CreatedDate != "" {
			reg.CreatedDate = parsed.Domain.CreatedDate
		}
		if parsed.Domain.ExpirationDate != "" {
			reg.ExpiryDate = parsed.Domain.ExpirationDate
		}
		if parsed.Domain.UpdatedDate != "" {
			reg.UpdatedDate = parsed.Domain.UpdatedDate
		}
		if len(parsed.Domain.NameServers) > 0 {
			reg.NameServers = parsed.Domain.NameServers
		}
		if len(parsed.Domain.Status) > 0 {
			reg.Status = parsed.Domain.Status
		}
	}
	return reg
}
