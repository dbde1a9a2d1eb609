package util

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var XSSPolicy = bluemonday.UGCPolicy()

// plainTextPolicy strips every tag. Used for single line fields like titles.
var plainTextPolicy = bluemonday.StrictPolicy()

// XSSSanitize sanitizes of HTML and returns the unescaped HTML
func XSSSanitize(val string) string {
	return html.UnescapeString(XSSPolicy.Sanitize(val))
}

// SanitizePlainText strips all HTML and surrounding whitespace
func SanitizePlainText(val string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(val)))
}
