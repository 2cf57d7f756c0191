package extract

import (
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// RowExtractor applies an XPath selector to a document or fragment and
// returns the matching sub-nodes (spec §4.2).
type RowExtractor struct {
	Selector string
}

// NewRowExtractor builds a RowExtractor. The selector is compiled lazily
// on first Extract call by htmlquery; a malformed expression surfaces
// there as a ParseError, not here.
func NewRowExtractor(selector string) *RowExtractor {
	return &RowExtractor{Selector: selector}
}

// Extract runs the row selector against node and returns every matching
// sub-node, in document order.
func (r *RowExtractor) Extract(node *html.Node) ([]*html.Node, error) {
	if node == nil {
		return nil, &ParseError{Message: "nil document passed to RowExtractor"}
	}
	nodes, err := htmlquery.QueryAll(node, r.Selector)
	if err != nil {
		return nil, &ParseError{Message: "invalid XPath selector " + r.Selector, Err: err}
	}
	return nodes, nil
}
