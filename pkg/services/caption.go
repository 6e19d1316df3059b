package services

import (
	"html/template"
	"regexp"
	"strings"
)

// parenthesized text in captions is a scientific name
var scientificName = regexp.MustCompile(`\(([^()]+)\)`)

// CaptionHTML escapes caption and italicizes every parenthesized part
func CaptionHTML(caption string) template.HTML {
	escaped := template.HTMLEscapeString(caption)
	return template.HTML(scientificName.ReplaceAllString(escaped, "(<em>$1</em>)"))
}

// AltText is the caption up to its first period, trimmed
func AltText(caption string) string {
	before, _, _ := strings.Cut(caption, ".")
	return strings.TrimSpace(before)
}
