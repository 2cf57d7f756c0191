// Package pipeline wires the download, extract, postprocess, and
// urltracker packages into the per-channel and per-entry processing
// steps the scheduler drives (spec §4.6, §4.7). Grounded on
// webscraper/processing.py's process_channel/process_entry and
// make_channel_extractor/make_entry_extractor.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/notapresent/glommer/internal/download"
	"github.com/notapresent/glommer/internal/extract"
	"github.com/notapresent/glommer/internal/logger"
	"github.com/notapresent/glommer/internal/model"
	"github.com/notapresent/glommer/internal/urltracker"
)

// ProcessChannel downloads a channel's index page, extracts candidate
// entry rows, validates and tracks them against storage, and persists
// the channel's updated status. It returns the newly discovered entries
// (already assigned the channel's ID), or nil if the fetch or parse
// failed — a failed channel is not itself an error the caller need act
// on beyond what channel.Status now records.
func ProcessChannel(ctx context.Context, dl Fetcher, store model.ChannelStore, channel *model.Channel) ([]*model.Entry, error) {
	if channel.RowSelector == "" || channel.URLSelector == "" || channel.TitleSelector == "" {
		return nil, &InvalidStateError{Message: "channel is missing required selectors"}
	}

	var newEntries []*model.Entry

	finalURL, body, err := dl.Get(ctx, channel.URL)
	switch {
	case isDownloadError(err):
		channel.Status = model.StatusWarning
		logger.Warn("channel download failed", "channel", channel.String(), "error", err)

	case err != nil:
		channel.Status = model.StatusError
		logger.Error("channel download error", "channel", channel.String(), "error", err)

	default:
		entries, perr := parseChannel(channel, finalURL, body)
		switch {
		case perr != nil:
			channel.Status = model.StatusError
			logger.Error("channel parse failed", "channel", channel.String(), "error", perr)
		case len(entries) == 0:
			channel.Status = model.StatusWarning
			logger.Warn("channel has no entries", "channel", channel.String())
		default:
			tracked, terr := urltracker.Track(ctx, store, channel, entries)
			if terr != nil {
				return nil, terr
			}
			newEntries = tracked
			channel.Status = model.StatusOK
			logger.Info("channel processed", "channel", channel.String(), "new_entries", len(newEntries))
		}
	}

	if err := store.SaveChannel(ctx, channel); err != nil {
		return nil, err
	}
	return newEntries, nil
}

// parseChannel runs the channel's extractor over body, resolves each
// row's URL against finalURL, strips whitespace from every field value,
// and drops rows that fail validation.
func parseChannel(channel *model.Channel, finalURL, body string) ([]*model.Entry, error) {
	doc, err := extract.ParseDocument(body)
	if err != nil {
		return nil, err
	}

	rows, err := extract.NewChannelExtractor(channel).Extract(doc)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.Entry, 0, len(rows))
	for _, row := range rows {
		strip(row)

		// A row with no url leaves URL empty so validation rejects it,
		// instead of resolving to the channel page itself.
		entryURL := row["url"]
		if entryURL != "" {
			entryURL = resolve(entryURL, finalURL)
		}

		entry := &model.Entry{
			ChannelID: channel.ID,
			Added:     time.Now(),
			URL:       entryURL,
			Title:     row["title"],
			Extra:     row["extra"],
			Status:    model.StatusNew,
		}

		if verr := model.ValidateEntry(entry); verr != nil {
			logger.Info("invalid channel row skipped", "channel", channel.String(), "error", verr)
			continue
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

func strip(row extract.Row) {
	for k, v := range row {
		row[k] = strings.TrimSpace(v)
	}
}

func isDownloadError(err error) bool {
	_, ok := err.(*download.Error)
	return ok
}
