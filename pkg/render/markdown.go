package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// markdown is the shared Goldmark instance. Goldmark converters are
// safe for concurrent use once constructed.
var markdown = goldmark.New()

// Markdown renders CommonMark text to HTML.
func Markdown(raw string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(raw), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	// Goldmark terminates the last block with a newline; the stored
	// rendered value is the bare fragment.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
