package util

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DomainOf returns the lowercase host of a URL with any port and a leading
// "www." removed. Scheme-less inputs such as "example.com/a" are accepted.
func DomainOf(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "http://" + rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	return strings.TrimSuffix(host, ".")
}

// RootDomain reduces a host to its registrable domain (eTLD+1), so
// "news.example.co.uk" and "example.co.uk" share a root. IPs and hosts the
// public-suffix list cannot reduce are returned unchanged.
func RootDomain(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" || net.ParseIP(host) != nil {
		return host
	}
	root, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return root
}

// HasDomainSuffix reports whether host equals domain or is a subdomain of it
func HasDomainSuffix(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
