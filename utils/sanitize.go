package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.StrictPolicy()

// plainText restores entities that cannot open a tag. < and > stay escaped.
var plainText = strings.NewReplacer("&#39;", "'", "&#34;", `"`, "&amp;", "&")

// Sanitize strips all markup from user supplied text. Entities are decoded
// before the policy runs so encoded tags are stripped too.
func Sanitize(input string) string {
	return plainText.Replace(sanitizer.Sanitize(html.UnescapeString(input)))
}
