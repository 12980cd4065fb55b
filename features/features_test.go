package features

import (
	"math"
	"testing"

	"urlvet/urlinfo"
)

func TestEntropy(t *testing.T) {
	if got := Entropy(""); got != 0 {
		t.Errorf("Entropy(\"\") = %v, want 0", got)
	}
	if got := Entropy("aaaa"); got != 0 {
		t.Errorf("Entropy(\"aaaa\") = %v, want 0", got)
	}
	// All-distinct string of length n has entropy log2(n).
	got := Entropy("abcd")
	if math.Abs(got-2.0) > 1e-9 {
		t.Errorf("Entropy(\"abcd\") = %v, want 2.0", got)
	}
	got = Entropy("abcdefgh")
	if math.Abs(got-3.0) > 1e-9 {
		t.Errorf("Entropy(\"abcdefgh\") = %v, want 3.0", got)
	}
}

func TestBuildVector(t *testing.T) {
	b := NewBuilder(nil)
	https := false
	u := "http://bad-login-phish.tk/secure/update.php?next=http://real.bank.com&id=4"
	c := urlinfo.Extract(u, &https)

	v := b.Build(u, c)

	if len(v) != len(Names) {
		t.Fatalf("vector has %d fields, want %d", len(v), len(Names))
	}
	for _, name := range Names {
		value, ok := v[name]
		if !ok {
			t.Errorf("missing feature %q", name)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			t.Errorf("feature %q is not finite: %v", name, value)
		}
	}

	if v["is_https"] != 0 {
		t.Errorf("is_https = %v, want 0", v["is_https"])
	}
	if v["redirects"] != 1 {
		t.Errorf("redirects = %v, want 1 (open-redirect query)", v["redirects"])
	}
	if v["suspicious_query"] != 1 {
		t.Errorf("suspicious_query = %v, want 1", v["suspicious_query"])
	}
	if v["queries_count"] != 2 {
		t.Errorf("queries_count = %v, want 2", v["queries_count"])
	}
	if v["sensitive_words"] < 2 {
		// login, secure, update all appear
		t.Errorf("sensitive_words = %v, want >= 2", v["sensitive_words"])
	}
	if v["file_extension"] != float64(urlinfo.ExtWeb) {
		t.Errorf("file_extension = %v, want %d", v["file_extension"], urlinfo.ExtWeb)
	}
	if v["url_length"] != float64(len(u)) {
		t.Errorf("url_length = %v, want %d", v["url_length"], len(u))
	}
}

func TestOrderedMatchesNames(t *testing.T) {
	b := NewBuilder(DefaultRefData())
	https := true
	c := urlinfo.Extract("https://bit.ly/3xYz", &https)
	v := b.Build("https://bit.ly/3xyz", c)

	row := v.Ordered()
	if len(row) != len(Names) {
		t.Fatalf("row has %d values, want %d", len(row), len(Names))
	}
	for i, name := range Names {
		if row[i] != v[name] {
			t.Errorf("row[%d] = %v, want %v (%s)", i, row[i], v[name], name)
		}
	}
	if v["shortening_service"] != 1 {
		t.Errorf("shortening_service = %v, want 1 for bit.ly", v["shortening_service"])
	}
}

func TestRefDataDegradesToNoMatch(t *testing.T) {
	rd := LoadRefData("/nonexistent/dir")
	if !rd.IsCommonTLD("com") {
		t.Error("defaults should survive a missing override dir")
	}
	if rd.IsCommonTLD("") {
		t.Error("empty tld is never common")
	}
	if rd.HasSuspiciousQuery("") {
		t.Error("empty query is never suspicious")
	}
}
