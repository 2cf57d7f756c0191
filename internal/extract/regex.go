package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// RegexExtractor finds every URL-looking substring ending in one of a
// fixed set of extensions, over raw document text (spec §4.2). It is
// used for streaming media links, which are often embedded in inline
// script blocks rather than anchor/img attributes and so are invisible
// to the XPath extractors.
type RegexExtractor struct {
	re *regexp.Regexp
}

// NewRegexExtractor compiles the case-insensitive pattern
// ([\w.\-/]+\.(ext1|ext2|...)) for the given extensions.
func NewRegexExtractor(extensions []string) *RegexExtractor {
	pattern := fmt.Sprintf(`(?i)([\w.\-/]+\.(%s))`, strings.Join(extensions, "|"))
	return &RegexExtractor{re: regexp.MustCompile(pattern)}
}

// Extract returns every match in raw, in order of appearance.
func (r *RegexExtractor) Extract(raw string) []string {
	matches := r.re.FindAllString(raw, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
