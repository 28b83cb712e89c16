// Package dnsinfo resolves the DNS records reported alongside an analysis.
// Lookups are best-effort enrichment: failures leave record lists empty and
// never fail the caller.
package dnsinfo

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"

	"github.com/mcsdevv/webanalyzer/internal/config"
)

// Records holds the record sets surfaced in the report.
type Records struct {
	A     []string `json:"a"`
	AAAA  []string `json:"aaaa"`
	CNAME string   `json:"cname"`
	NS    []string `json:"ns"`
	MX    []string `json:"mx"`
	TXT   []string `json:"txt"`
}

// EmptyRecords returns a Records with initialized lists so empty record
// sets serialize as [] rather than null.
func EmptyRecords() Records {
	return Records{
		A:    []string{},
		AAAA: []string{},
		NS:   []string{},
		MX:   []string{},
		TXT:  []string{},
	}
}

// Resolver queries a fixed upstream resolver directly.
type Resolver struct {
	client   *dns.Client
	resolver string
	logger   *zap.Logger
}

// NewResolver creates a Resolver from configuration.
func NewResolver(cfg config.DNSConfig, logger *zap.Logger) *Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Resolver{
		client:   &dns.Client{Timeout: timeout},
		resolver: cfg.Resolver,
		logger:   logger.Named("dnsinfo"),
	}
}

// Lookup resolves the record sets for hostname. IP literals and localhost
// are skipped since they carry no registrable DNS data.
func (r *Resolver) Lookup(ctx context.Context, hostname string) Records {
	records := EmptyRecords()
	if hostname == "" || hostname == "localhost" || net.ParseIP(hostname) != nil {
		return records
	}

	for _, ans := range r.query(ctx, hostname, dns.TypeA) {
		if a, ok := ans.(*dns.A); ok {
			records.A = append(records.A, a.A.String())
		}
		if cname, ok := ans.(*dns.CNAME); ok && records.CNAME == "" {
			records.CNAME = strings.TrimSuffix(cname.Target, ".")
		}
	}

	for _, ans := range r.query(ctx, hostname, dns.TypeAAAA) {
		if aaaa, ok := ans.(*dns.AAAA); ok {
			records.AAAA = append(records.AAAA, aaaa.AAAA.String())
		}
	}

	for _, ans := range r.query(ctx, hostname, dns.TypeNS) {
		if ns, ok := ans.(*dns.NS); ok {
			records.NS = append(records.NS, strings.TrimSuffix(ns.Ns, "."))
		}
	}

	for _, ans := range r.query(ctx, hostname, dns.TypeMX) {
		if mx, ok := ans.(*dns.MX); ok {
			records.MX = append(records.MX, fmt.Sprintf("%s (priority %d)", strings.TrimSuffix(mx.Mx, "."), mx.Preference))
		}
	}

	for _, ans := range r.query(ctx, hostname, dns.TypeTXT) {
		if txt, ok := ans.(*dns.TXT); ok {
			records.TXT = append(records.TXT, strings.Join(txt.Txt, ""))
		}
	}

	return records
}

// query performs one exchange and returns the answer section; any failure
// is logged and surfaces as no answers.
func (r *Resolver) query(ctx context.Context, hostname string, qtype uint16) []dns.RR {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(hostname), qtype)

	reply, _, err := r.client.ExchangeContext(ctx, msg, r.resolver)
	if err != nil {
		r.logger.Debug("dns query failed",
			zap.String("hostname", hostname),
			zap.Uint16("qtype", qtype),
			zap.Error(err))
		return nil
	}
	return reply.Answer
}
