package extract

import (
	"golang.org/x/net/html"

	"github.com/notapresent/glommer/internal/model"
)

// ChannelExtractor is a DatasetExtractor parameterised from a channel's
// row/url/title/extra selectors (spec §4.2). extra is only wired in when
// the channel defines it.
type ChannelExtractor struct {
	dataset *DatasetExtractor
}

// NewChannelExtractor builds a ChannelExtractor from a channel's
// selectors.
func NewChannelExtractor(ch *model.Channel) *ChannelExtractor {
	fields := map[string]string{
		"url":   ch.URLSelector,
		"title": ch.TitleSelector,
	}
	if ch.HasExtraField() {
		fields["extra"] = ch.ExtraSelector
	}
	return &ChannelExtractor{dataset: NewDatasetExtractor(ch.RowSelector, fields)}
}

// Extract runs the channel's row/field selectors against doc, producing
// one Row per matched row with keys "url", "title", and optionally
// "extra".
func (c *ChannelExtractor) Extract(doc *html.Node) ([]Row, error) {
	return c.dataset.Extract(doc)
}
