package extract

import "golang.org/x/net/html"

var titleFallback = NewFieldExtractor("//title/text()")

// TitleFallback recovers a document title from its <title> tag when
// channel-level row extraction produced none (resolves the spec's open
// question on title fallback: this implementation recovers from
// <title> rather than treating a blank title as a hard validation
// error).
func TitleFallback(doc *html.Node) (string, bool, error) {
	return titleFallback.Extract(doc)
}
