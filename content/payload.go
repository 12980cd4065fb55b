package content

// Payload types produced by the acquisition strategies.
const (
	TypeExecutable = "executable"
	TypeAudio      = "audio"
	TypePDF        = "pdf"
	TypeWebpage    = "webpage"
)

// MaxContentChars bounds the text sent downstream to the content classifier.
const MaxContentChars = 1000

// Payload is the normalized result of an acquisition strategy. Content is
// always truncated to the char budget before it leaves this package. A nil
// *Payload is a valid non-error outcome meaning nothing could be acquired.
type Payload struct {
	Type     string            `json:"type"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
