package store

import (
	"encoding/json"

	"github.com/notapresent/glommer/internal/model"
)

func fromChannelModel(c *model.Channel) *channelRow {
	return &channelRow{
		ID:            c.ID,
		Title:         c.Title,
		URL:           c.URL,
		Enabled:       c.Enabled,
		Slug:          c.Slug,
		Interval:      string(c.Interval),
		Status:        string(c.Status),
		RowSelector:   c.RowSelector,
		URLSelector:   c.URLSelector,
		TitleSelector: c.TitleSelector,
		ExtraSelector: c.ExtraSelector,
	}
}

func toChannelModel(r *channelRow) *model.Channel {
	return &model.Channel{
		ID:            r.ID,
		Title:         r.Title,
		URL:           r.URL,
		Enabled:       r.Enabled,
		Slug:          r.Slug,
		Interval:      model.Interval(r.Interval),
		Status:        model.Status(r.Status),
		RowSelector:   r.RowSelector,
		URLSelector:   r.URLSelector,
		TitleSelector: r.TitleSelector,
		ExtraSelector: r.ExtraSelector,
	}
}

// fromEntryModel marshals an entry's ItemSet into the JSON column the
// spec's persisted-state layout names. A marshal failure here would
// mean a non-string map key or cyclical value, neither of which
// model.ItemSet can produce, so the error is dropped rather than
// threaded through every caller.
func fromEntryModel(e *model.Entry) *entryRow {
	itemsJSON, _ := json.Marshal(e.Items)
	return &entryRow{
		ID:        e.ID,
		ChannelID: e.ChannelID,
		Added:     e.Added,
		Status:    string(e.Status),
		URL:       e.URL,
		Title:     e.Title,
		Extra:     e.Extra,
		FinalURL:  e.FinalURL,
		Items:     string(itemsJSON),
	}
}
