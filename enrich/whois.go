package enrich

import (
	"strings"
	"time"

	whois "github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"
)

// DomainInfo is the enrichment result for one registrable domain.
// Age is whole days since the earliest reported creation date, 0 when
// unknown. Status is 0 unknown/error, 1 weak/disposable-looking, 2 other.
type DomainInfo struct {
	Age    int `json:"domain_age"`
	Status int `json:"domain_status"`
}

var weakStatuses = map[string]bool{
	"ok":            true,
	"pendingdelete": true,
	"pendingcreate": true,
	"serverhold":    true,
	"inactive":      true,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

// WhoisLookup queries WHOIS for a domain. All failures degrade to the zero
// DomainInfo; WHOIS hiccups never fail a batch.
func WhoisLookup(domain string) DomainInfo {
	raw, err := whois.Whois(domain)
	if err != nil {
		return DomainInfo{}
	}

	p, err := parser.Parse(raw)
	if err != nil || p.Domain == nil {
		// For subdomains, retry the parent (e.g. mail.example.com -> example.com)
		parts := strings.Split(domain, ".")
		if len(parts) > 2 {
			return WhoisLookup(strings.Join(parts[1:], "."))
		}
		return DomainInfo{}
	}

	dates := CreationDates(p.Domain.CreatedDate, p.Domain.CreatedDateInTime)
	return DomainInfo{
		Age:    AgeDays(dates, time.Now()),
		Status: StatusCode(p.Domain.Status),
	}
}

// CreationDates collects every parseable creation date a record reports.
func CreationDates(created string, createdTime *time.Time) []time.Time {
	var dates []time.Time
	if createdTime != nil && !createdTime.IsZero() {
		dates = append(dates, *createdTime)
	}
	created = strings.TrimSpace(created)
	if created != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, created); err == nil {
				dates = append(dates, t)
				break
			}
		}
	}
	return dates
}

// AgeDays returns whole days between now and the earliest creation date,
// 0 when no date is known.
func AgeDays(dates []time.Time, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	earliest := dates[0]
	for _, d := range dates[1:] {
		if d.Before(earliest) {
			earliest = d
		}
	}
	days := int(now.Sub(earliest).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// StatusCode maps reported WHOIS statuses to the categorical code: 1 when any
// status is in the weak set, 2 otherwise, 0 when none were reported.
func StatusCode(statuses []string) int {
	if len(statuses) == 0 {
		return 0
	}
	for _, s := range statuses {
		// statuses often carry a trailing URL, e.g. "clientTransferProhibited https://icann.org/..."
		s = strings.ToLower(strings.TrimSpace(s))
		if i := strings.IndexByte(s, ' '); i > 0 {
			s = s[:i]
		}
		if weakStatuses[s] {
			return 1
		}
	}
	return 2
}
