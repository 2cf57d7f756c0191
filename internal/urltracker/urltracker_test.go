package urltracker

import (
	"context"
	"testing"

	"github.com/notapresent/glommer/internal/model"
)

type fakeStore struct {
	model.ChannelStore
	stored  []model.EntryIDURL
	deleted []uint
}

func (f *fakeStore) EntryIDURLs(ctx context.Context, channel *model.Channel) ([]model.EntryIDURL, error) {
	return f.stored, nil
}

func (f *fakeStore) DeleteEntries(ctx context.Context, channel *model.Channel, ids []uint) error {
	f.deleted = append(f.deleted, ids...)
	return nil
}

func TestTrack_ReturnsOnlyNewEntries(t *testing.T) {
	store := &fakeStore{stored: []model.EntryIDURL{
		{ID: 1, URL: "http://x.com/a"},
		{ID: 2, URL: "http://x.com/b"},
	}}
	channel := &model.Channel{ID: 1}
	fresh := []*model.Entry{
		{URL: "http://x.com/a"},
		{URL: "http://x.com/c"},
	}

	newEntries, err := Track(context.Background(), store, channel, fresh)
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}

	if len(newEntries) != 1 || newEntries[0].URL != "http://x.com/c" {
		t.Errorf("newEntries = %v", newEntries)
	}
}

func TestTrack_DeletesStaleEntries(t *testing.T) {
	store := &fakeStore{stored: []model.EntryIDURL{
		{ID: 1, URL: "http://x.com/a"},
		{ID: 2, URL: "http://x.com/b"},
	}}
	channel := &model.Channel{ID: 1}
	fresh := []*model.Entry{{URL: "http://x.com/a"}}

	if _, err := Track(context.Background(), store, channel, fresh); err != nil {
		t.Fatalf("Track() error = %v", err)
	}

	if len(store.deleted) != 1 || store.deleted[0] != 2 {
		t.Errorf("deleted = %v, want [2]", store.deleted)
	}
}

func TestTrack_NoStaleEntriesSkipsDelete(t *testing.T) {
	store := &fakeStore{stored: []model.EntryIDURL{{ID: 1, URL: "http://x.com/a"}}}
	channel := &model.Channel{ID: 1}
	fresh := []*model.Entry{{URL: "http://x.com/a"}}

	if _, err := Track(context.Background(), store, channel, fresh); err != nil {
		t.Fatalf("Track() error = %v", err)
	}

	if len(store.deleted) != 0 {
		t.Errorf("expected no deletes, got %v", store.deleted)
	}
}
