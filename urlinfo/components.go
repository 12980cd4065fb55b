package urlinfo

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Components holds the typed pieces of a normalized URL. String fields default
// to "" so downstream arithmetic never needs nil checks. A value is built once
// per request and not mutated afterwards.
type Components struct {
	Scheme      string `json:"scheme"`
	IsHTTPS     bool   `json:"is_https"`
	Subdomain   string `json:"subdomain"`
	Domain      string `json:"domain"`
	TLD         string `json:"tld"`
	Path        string `json:"path"`
	Query       string `json:"query"`
	Ext         string `json:"ext"`
	ExtCategory int    `json:"ext_category"`
	HasRedirect bool   `json:"has_redirect"`
}

// Extract splits a URL into its components. isHTTPS may be passed by callers
// that already probed the host; nil triggers a probe. Extract never fails:
// whatever cannot be parsed degrades to empty fields.
func Extract(rawURL string, isHTTPS *bool) Components {
	https := false
	if isHTTPS != nil {
		https = *isHTTPS
	} else {
		https = ProbeHTTPS(rawURL)
	}

	protocol := "http"
	if https {
		protocol = "https"
	}
	u := Normalize(rawURL, protocol)

	c := Components{IsHTTPS: https}
	c.Ext = PathExtension(u)
	c.ExtCategory = CategorizeExt(c.Ext)

	if parsed, err := url.Parse(u); err == nil {
		c.Scheme = parsed.Scheme
		c.Path = parsed.Path
		c.Query = parsed.RawQuery

		if sub, dom, tld, ok := splitHost(parsed.Hostname()); ok {
			c.Subdomain = sub
			c.Domain = dom
			c.TLD = tld
		}
	}

	c.HasRedirect = hasRedirect(c.Query)
	return c
}

// RegistrableDomain returns domain.tld, or "" when the host could not be
// split against the public suffix list.
func (c Components) RegistrableDomain() string {
	if c.Domain == "" || c.TLD == "" {
		return ""
	}
	return c.Domain + "." + c.TLD
}

// splitHost separates a hostname into subdomain, domain and public suffix.
func splitHost(host string) (sub, dom, tld string, ok bool) {
	host = strings.Trim(host, ".")
	if host == "" || !strings.Contains(host, ".") {
		return "", "", "", false
	}

	suffix, _ := publicsuffix.PublicSuffix(host)
	if suffix == "" || suffix == host {
		return "", "", "", false
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", "", "", false
	}

	dom = strings.TrimSuffix(etld1, "."+suffix)
	sub = strings.TrimSuffix(strings.TrimSuffix(host, etld1), ".")
	if sub == "www" {
		// not a meaningful signal
		sub = ""
	}
	return sub, dom, suffix, true
}

// hasRedirect reports whether any query value is itself a syntactically valid
// absolute URL, the classic open-redirect pattern.
func hasRedirect(query string) bool {
	if query == "" {
		return false
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return false
	}
	for _, vs := range values {
		for _, v := range vs {
			if looksLikeURL(v) {
				return true
			}
		}
	}
	return false
}

func looksLikeURL(v string) bool {
	parsed, err := url.Parse(Normalize(v, "http"))
	if err != nil {
		return false
	}
	host := parsed.Host
	if parsed.Scheme == "" || host == "" || !strings.Contains(host, ".") {
		return false
	}
	parts := strings.Split(host, ".")
	return len(parts[len(parts)-1]) > 1
}
