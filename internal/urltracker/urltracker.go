// Package urltracker reconciles a freshly parsed sequence of entries
// for one channel against what storage already holds: entries at URLs
// no longer present are deleted, entries at URLs not seen before are
// returned for insertion (spec §4.4). Grounded on
// webscraper/services.py's URLTracker/list_diff and
// webscraper/managers.py's EntryManager query shape.
package urltracker

import (
	"context"

	"github.com/notapresent/glommer/internal/model"
)

// Track loads the channel's persisted {url -> id} set, diffs it against
// fresh (freshly parsed, not yet persisted), deletes entries whose URL
// is no longer present, and returns the subset of fresh that is new,
// in fresh's original order.
//
// The read-then-delete is not transactional: acceptable because a
// channel is processed by exactly one task at a time (spec §4.4).
func Track(ctx context.Context, store model.ChannelStore, channel *model.Channel, fresh []*model.Entry) ([]*model.Entry, error) {
	stored, err := store.EntryIDURLs(ctx, channel)
	if err != nil {
		return nil, err
	}

	storedIDs := make(map[string]uint, len(stored))
	for _, row := range stored {
		storedIDs[row.URL] = row.ID
	}

	freshURLs := make(map[string]struct{}, len(fresh))
	for _, e := range fresh {
		freshURLs[e.URL] = struct{}{}
	}

	var staleIDs []uint
	for url, id := range storedIDs {
		if _, ok := freshURLs[url]; !ok {
			staleIDs = append(staleIDs, id)
		}
	}

	if len(staleIDs) > 0 {
		if err := store.DeleteEntries(ctx, channel, staleIDs); err != nil {
			return nil, err
		}
	}

	newEntries := make([]*model.Entry, 0, len(fresh))
	for _, e := range fresh {
		if _, known := storedIDs[e.URL]; !known {
			newEntries = append(newEntries, e)
		}
	}

	return newEntries, nil
}
