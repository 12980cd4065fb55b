package urlinfo

import "strings"

// Normalize turns an arbitrary string claiming to be a URL into a best-effort
// absolute URL. protocol ("http" or "https") is used when the input carries no
// scheme of its own. Normalize never fails and is idempotent; it returns the
// empty string only for empty input.
func Normalize(raw, protocol string) string {
	if protocol == "" {
		protocol = "http"
	}

	u := stripNonASCII(raw)
	u = strings.TrimSpace(u)
	u = strings.ToLower(u)
	u = strings.TrimLeft(u, "/")

	if strings.HasPrefix(u, "//") {
		u = protocol + ":" + u
	} else if u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = protocol + "://" + u
	}

	return u
}

func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < 0x80 {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
