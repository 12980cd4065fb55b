package features

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// RefData is the immutable reference-list context consulted by the feature
// builder. It is built once at startup; lookups that miss simply score as
// "no match", they never fail a request.
type RefData struct {
	commonTLDs map[string]bool
	sensitive  []string
	suspicious []string
	shorteners []string
}

// Default reference lists. An override directory can replace any of them with
// flat one-entry-per-line files (common_tlds.txt, sensitive_words.txt,
// suspicious_queries.txt, shorteners.txt).
var defaultCommonTLDs = []string{
	"com", "org", "net", "edu", "gov", "mil", "int", "info", "biz",
	"co", "io", "us", "uk", "de", "fr", "ru", "jp", "cn", "au", "ca",
}

var defaultSensitiveWords = []string{
	"login", "signin", "verify", "account", "secure", "update", "confirm",
	"banking", "password", "credential", "wallet", "invoice", "payment",
	"paypal", "webscr", "suspend", "unlock", "authenticate",
}

var defaultSuspiciousQueries = []string{
	"id=", "page=", "php?", "admin=", "redirect=", "redir=", "next=",
	"url=", "token=", "cmd=", "exec=",
}

var defaultShorteners = []string{
	"bit.ly", "goo.gl", "tinyurl.com", "t.co", "ow.ly", "is.gd", "buff.ly",
	"adf.ly", "bit.do", "cutt.ly", "rb.gy", "shorturl.at", "tiny.cc",
	"rebrand.ly", "v.gd", "soo.gd", "clck.ru", "qps.ru", "u.to",
}

// DefaultRefData returns the in-code reference lists.
func DefaultRefData() *RefData {
	return &RefData{
		commonTLDs: toSet(defaultCommonTLDs),
		sensitive:  defaultSensitiveWords,
		suspicious: defaultSuspiciousQueries,
		shorteners: defaultShorteners,
	}
}

// LoadRefData builds reference lists from dir, falling back to the in-code
// defaults for any file that is missing or unreadable.
func LoadRefData(dir string) *RefData {
	rd := DefaultRefData()
	if dir == "" {
		return rd
	}

	if lines, ok := readLines(filepath.Join(dir, "common_tlds.txt")); ok {
		rd.commonTLDs = toSet(lines)
	}
	if lines, ok := readLines(filepath.Join(dir, "sensitive_words.txt")); ok {
		rd.sensitive = lines
	}
	if lines, ok := readLines(filepath.Join(dir, "suspicious_queries.txt")); ok {
		rd.suspicious = lines
	}
	if lines, ok := readLines(filepath.Join(dir, "shorteners.txt")); ok {
		rd.shorteners = lines
	}
	return rd
}

func readLines(path string) ([]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[REFDATA] %s not loaded, using defaults: %v", filepath.Base(path), err)
		return nil, false
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(strings.ToLower(sc.Text()))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil || len(lines) == 0 {
		log.Printf("[REFDATA] %s unusable, using defaults", filepath.Base(path))
		return nil, false
	}
	return lines, true
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[strings.ToLower(it)] = true
	}
	return set
}

// IsCommonTLD reports whether tld appears in the common-TLD set.
func (rd *RefData) IsCommonTLD(tld string) bool {
	return tld != "" && rd.commonTLDs[strings.ToLower(tld)]
}

// SensitiveWordCount counts how many sensitive words appear in the URL.
func (rd *RefData) SensitiveWordCount(url string) int {
	count := 0
	for _, w := range rd.sensitive {
		if strings.Contains(url, w) {
			count++
		}
	}
	return count
}

// HasSuspiciousQuery reports whether any configured substring appears in the
// raw query string.
func (rd *RefData) HasSuspiciousQuery(query string) bool {
	if query == "" {
		return false
	}
	for _, q := range rd.suspicious {
		if strings.Contains(query, q) {
			return true
		}
	}
	return false
}

// IsShortened reports whether the URL goes through a known shortening service.
func (rd *RefData) IsShortened(url string) bool {
	for _, s := range rd.shorteners {
		if strings.Contains(url, s) {
			return true
		}
	}
	return false
}
