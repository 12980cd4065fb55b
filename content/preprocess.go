package content

import (
	"regexp"
	"strings"
)

var (
	// keep sentence punctuation, drop everything else that is not a word char
	nonTextPattern    = regexp.MustCompile(`[^\w\s!?.,;]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "been": true, "but": true, "by": true, "can": true,
	"did": true, "do": true, "does": true, "for": true, "from": true,
	"had": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "how": true, "i": true, "if": true, "in": true,
	"is": true, "it": true, "its": true, "just": true, "me": true,
	"my": true, "no": true, "not": true, "of": true, "on": true,
	"or": true, "our": true, "she": true, "so": true, "than": true,
	"that": true, "the": true, "their": true, "them": true, "then": true,
	"there": true, "these": true, "they": true, "this": true, "to": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "who": true, "will": true, "with": true,
	"would": true, "you": true, "your": true,
}

// PreprocessText normalizes acquired text before it is sent to the content
// classifier: lowercase, strip special characters keeping sentence
// punctuation, collapse whitespace, drop English stopwords. This shrinks the
// classifier request without losing signal.
func PreprocessText(text string) string {
	text = strings.ToLower(text)
	text = nonTextPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))

	words := strings.Split(text, " ")
	kept := words[:0]
	for _, w := range words {
		if w != "" && !stopwords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
