package extract

import (
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// FieldExtractor applies the same XPath evaluation as RowExtractor but
// returns only the first result (spec §4.2: "returns the first result
// (or null if empty). Strings are returned as-is, not iterated.").
type FieldExtractor struct {
	Selector string
}

func NewFieldExtractor(selector string) *FieldExtractor {
	return &FieldExtractor{Selector: selector}
}

// Extract returns the first match's text (attribute value or inner
// text, htmlquery treats both uniformly) and whether a match was found.
func (f *FieldExtractor) Extract(node *html.Node) (string, bool, error) {
	if node == nil {
		return "", false, &ParseError{Message: "nil fragment passed to FieldExtractor"}
	}
	found, err := htmlquery.Query(node, f.Selector)
	if err != nil {
		return "", false, &ParseError{Message: "invalid XPath selector " + f.Selector, Err: err}
	}
	if found == nil {
		return "", false, nil
	}
	return htmlquery.InnerText(found), true, nil
}
