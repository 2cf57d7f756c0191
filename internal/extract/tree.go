package extract

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ParseDocument parses an HTML document into a single tree. Both the
// channel/entry DatasetExtractors and the streaming RegexExtractor
// operate against state derived from this one parse (the regex
// extractor over the raw text, the XPath extractors over the tree),
// per spec §4.2's "single parsed tree" requirement.
func ParseDocument(rawHTML string) (*html.Node, error) {
	doc, err := htmlquery.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML document", Err: err}
	}
	return doc, nil
}
