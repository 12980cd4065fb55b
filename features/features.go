package features

import (
	"math"
	"net/url"
	"regexp"
	"strings"

	"urlvet/urlinfo"
)

// Names lists the vector fields in the exact order the trained model expects.
// Changing this order breaks scoring.
var Names = []string{
	"shortening_service",
	"file_extension",
	"domain_entropy",
	"redirects",
	"subdomains_count",
	"digits_count",
	"queries_count",
	"special_characters_count",
	"suspicious_query",
	"is_common_tld",
	"domain_length",
	"url_length",
	"is_https",
	"sensitive_words",
}

// Vector is a flat feature-name to value mapping. All values are finite.
type Vector map[string]float64

// Ordered returns the values in the fixed Names order for scorers that take a
// positional row.
func (v Vector) Ordered() []float64 {
	row := make([]float64, len(Names))
	for i, name := range Names {
		row[i] = v[name]
	}
	return row
}

// Builder computes feature vectors against an immutable reference-data
// context. One Builder is shared by all requests.
type Builder struct {
	ref *RefData
}

func NewBuilder(ref *RefData) *Builder {
	if ref == nil {
		ref = DefaultRefData()
	}
	return &Builder{ref: ref}
}

// Build computes the feature vector for a normalized URL and its components.
// Pure: no network, no I/O, never fails.
func (b *Builder) Build(normURL string, c urlinfo.Components) Vector {
	return Vector{
		"shortening_service":       boolFeature(b.ref.IsShortened(normURL)),
		"file_extension":           float64(c.ExtCategory),
		"domain_entropy":           Entropy(c.Domain),
		"redirects":                boolFeature(c.HasRedirect),
		"subdomains_count":         float64(subdomainCount(c.Subdomain)),
		"digits_count":             float64(digitCount(normURL)),
		"queries_count":            float64(queryCount(c.Query)),
		"special_characters_count": float64(specialCharCount(normURL)),
		"suspicious_query":         boolFeature(b.ref.HasSuspiciousQuery(c.Query)),
		"is_common_tld":            boolFeature(b.ref.IsCommonTLD(c.TLD)),
		"domain_length":            float64(len(c.Domain)),
		"url_length":               float64(len(normURL)),
		"is_https":                 boolFeature(c.IsHTTPS),
		"sensitive_words":          float64(b.ref.SensitiveWordCount(normURL)),
	}
}

// Entropy is the Shannon entropy of s over its distinct characters, in bits.
// Defined as 0 for the empty string so downstream math never sees NaN.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}
	runes := []rune(s)
	counts := make(map[rune]int, len(runes))
	for _, r := range runes {
		counts[r]++
	}
	n := float64(len(runes))
	h := 0.0
	for _, count := range counts {
		p := float64(count) / n
		h -= p * math.Log2(p)
	}
	return h
}

var specialCharPattern = regexp.MustCompile(`[@%$*=+&#_-]|%[0-9A-Fa-f]{2}`)

func specialCharCount(s string) int {
	return len(specialCharPattern.FindAllString(s, -1))
}

func digitCount(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

// queryCount counts distinct query keys; a malformed query counts as none.
func queryCount(query string) int {
	if query == "" {
		return 0
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return 0
	}
	return len(values)
}

func subdomainCount(subdomain string) int {
	subdomain = strings.TrimSpace(subdomain)
	if subdomain == "" {
		return 0
	}
	return len(strings.Split(subdomain, "."))
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
