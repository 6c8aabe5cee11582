package assemble

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// sanitizeText strips any markup from a free-text value before it
// enters a document block. The strict policy escapes entities, so the
// result is unescaped again to recover plain text like "Smith & Co".
func sanitizeText(value string) string {
	cleaned := strictPolicy.Sanitize(value)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
