// Package sanitize extracts the HTML resume document from raw backend text.
// Models routinely wrap the document in markdown fences or prepend chatter;
// extraction is a tolerant substring search, not an HTML parser.
package sanitize

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidOutput indicates the backend text contains no recoverable document.
var ErrInvalidOutput = errors.New("model output contains no HTML document")

const (
	docStartMarker = "<!doctype html"
	docEndMarker   = "</html>"
)

// fencePattern matches markdown code fence delimiters with an optional
// language tag, anywhere in the text.
var fencePattern = regexp.MustCompile("(?i)```(?:html)?")

// Extract returns the HTML document embedded in raw model output.
// Leading commentary is dropped, fence delimiters are removed, and
// anything after the closing </html> tag is discarded. The absence of
// the opening marker is the only failure condition.
func Extract(raw string) (string, error) {
	text := fencePattern.ReplaceAllString(raw, "")

	// Both markers are pure ASCII, so folding only A-Z bytes keeps every
	// byte offset aligned with the original text. strings.ToLower would
	// not: some runes change byte length when lowercased.
	folded := asciiLower(text)

	start := strings.Index(folded, docStartMarker)
	if start < 0 {
		return "", ErrInvalidOutput
	}
	text = text[start:]
	folded = folded[start:]

	if end := strings.LastIndex(folded, docEndMarker); end >= 0 {
		text = text[:end+len(docEndMarker)]
	}

	return strings.TrimSpace(text), nil
}

// asciiLower lowercases only ASCII letters, preserving byte length.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
