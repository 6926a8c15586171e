package render

import (
	"html"
	"regexp"
	"strings"
)

// paragraphSplit matches the blank-line boundaries between paragraphs.
var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// urlPattern matches bare http(s) and www URLs in already-escaped text.
// The match stops at whitespace or at the first tag we introduced.
var urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<]+`)

// trailingPunct is stripped from the end of a matched URL so sentence
// punctuation does not become part of the link.
const trailingPunct = ".,;:!?)'\""

// Plain renders plain text to HTML: the text is escaped, bare URLs are
// converted to links, and line breaks become paragraph and <br /> tags.
func Plain(raw string) (string, error) {
	return Linebreaks(Urlize(html.EscapeString(raw))), nil
}

// Urlize wraps bare URLs in anchor tags. The input must already be
// HTML-escaped; the matched URL text is used verbatim as both the href
// and the link text. URLs starting with "www." get an "http://" href.
func Urlize(text string) string {
	return urlPattern.ReplaceAllStringFunc(text, func(match string) string {
		trimmed := strings.TrimRight(match, trailingPunct)
		tail := match[len(trimmed):]

		href := trimmed
		if strings.HasPrefix(strings.ToLower(trimmed), "www.") {
			href = "http://" + trimmed
		}
		return `<a href="` + href + `">` + trimmed + `</a>` + tail
	})
}

// Linebreaks converts newlines in escaped text to HTML: runs of two or
// more newlines separate paragraphs, single newlines become <br /> tags.
func Linebreaks(text string) string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	paragraphs := paragraphSplit.Split(normalized, -1)
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p == "" {
			continue
		}
		out = append(out, "<p>"+strings.ReplaceAll(p, "\n", "<br />")+"</p>")
	}
	return strings.Join(out, "\n\n")
}
