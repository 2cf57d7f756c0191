package pipeline

import (
	"context"
	"testing"

	"github.com/notapresent/glommer/internal/download"
	"github.com/notapresent/glommer/internal/model"
)

type fakeFetcher struct {
	finalURL string
	body     string
	err      error
}

func (f *fakeFetcher) Get(ctx context.Context, target string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	finalURL := f.finalURL
	if finalURL == "" {
		finalURL = target
	}
	return finalURL, f.body, nil
}

type fakeStore struct {
	entryIDURLs  []model.EntryIDURL
	saved        *model.Channel
	inserted     []*model.Entry
	deletedIDs   []uint
}

func (s *fakeStore) EnabledChannels(ctx context.Context) ([]*model.Channel, error) { return nil, nil }
func (s *fakeStore) EntryIDURLs(ctx context.Context, channel *model.Channel) ([]model.EntryIDURL, error) {
	return s.entryIDURLs, nil
}
func (s *fakeStore) DeleteEntries(ctx context.Context, channel *model.Channel, ids []uint) error {
	s.deletedIDs = append(s.deletedIDs, ids...)
	return nil
}
func (s *fakeStore) BulkInsert(ctx context.Context, entries []*model.Entry) error {
	s.inserted = append(s.inserted, entries...)
	return nil
}
func (s *fakeStore) SaveChannel(ctx context.Context, channel *model.Channel) error {
	s.saved = channel
	return nil
}

const channelHTML = `<html><body>
<div class="row"><a class="u" href="/entry1">E1</a><span class="t">Entry One</span></div>
<div class="row"><a class="u" href="/entry2">E2</a><span class="t">Entry Two</span></div>
</body></html>`

func testChannel() *model.Channel {
	return &model.Channel{
		ID:            1,
		URL:           "http://example.com/",
		RowSelector:   `//div[@class="row"]`,
		URLSelector:   `.//a[@class="u"]/@href`,
		TitleSelector: `.//span[@class="t"]/text()`,
	}
}

func TestProcessChannel_HappyPath(t *testing.T) {
	fetcher := &fakeFetcher{finalURL: "http://example.com/", body: channelHTML}
	store := &fakeStore{}
	channel := testChannel()

	entries, err := ProcessChannel(context.Background(), fetcher, store, channel)
	if err != nil {
		t.Fatalf("ProcessChannel() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 new entries, got %d", len(entries))
	}
	if channel.Status != model.StatusOK {
		t.Errorf("channel.Status = %v, want StatusOK", channel.Status)
	}
	if store.saved != channel {
		t.Error("expected channel to be saved")
	}
}

func TestProcessChannel_DownloadFailureSetsWarning(t *testing.T) {
	fetcher := &fakeFetcher{err: &download.Error{Kind: download.Timeout, URL: "http://example.com/"}}
	store := &fakeStore{}
	channel := testChannel()

	entries, err := ProcessChannel(context.Background(), fetcher, store, channel)
	if err != nil {
		t.Fatalf("ProcessChannel() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries on download failure, got %d", len(entries))
	}
	if channel.Status != model.StatusWarning {
		t.Errorf("channel.Status = %v, want StatusWarning", channel.Status)
	}
}

func TestProcessChannel_ParseFailureSetsError(t *testing.T) {
	fetcher := &fakeFetcher{body: channelHTML}
	store := &fakeStore{}
	channel := testChannel()
	channel.RowSelector = "[[[invalid"

	_, err := ProcessChannel(context.Background(), fetcher, store, channel)
	if err != nil {
		t.Fatalf("ProcessChannel() error = %v", err)
	}
	if channel.Status != model.StatusError {
		t.Errorf("channel.Status = %v, want StatusError", channel.Status)
	}
}

func TestProcessChannel_TracksAgainstStorage(t *testing.T) {
	fetcher := &fakeFetcher{finalURL: "http://example.com/", body: channelHTML}
	store := &fakeStore{entryIDURLs: []model.EntryIDURL{
		{ID: 9, URL: "http://example.com/entry1"},
		{ID: 10, URL: "http://example.com/stale"},
	}}
	channel := testChannel()

	entries, err := ProcessChannel(context.Background(), fetcher, store, channel)
	if err != nil {
		t.Fatalf("ProcessChannel() error = %v", err)
	}
	if len(entries) != 1 || entries[0].URL != "http://example.com/entry2" {
		t.Errorf("entries = %v", entries)
	}
	if len(store.deletedIDs) != 1 || store.deletedIDs[0] != 10 {
		t.Errorf("deletedIDs = %v", store.deletedIDs)
	}
}

func TestProcessChannel_NoRowsSetsWarning(t *testing.T) {
	fetcher := &fakeFetcher{finalURL: "http://example.com/", body: `<html><body>no rows here</body></html>`}
	store := &fakeStore{}
	channel := testChannel()

	entries, err := ProcessChannel(context.Background(), fetcher, store, channel)
	if err != nil {
		t.Fatalf("ProcessChannel() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries when channel page has no rows, got %d", len(entries))
	}
	if channel.Status != model.StatusWarning {
		t.Errorf("channel.Status = %v, want StatusWarning", channel.Status)
	}
	if store.saved != channel {
		t.Error("expected channel to be saved")
	}
}

func TestProcessChannel_MissingSelectorsIsInvalidState(t *testing.T) {
	fetcher := &fakeFetcher{body: channelHTML}
	store := &fakeStore{}
	channel := &model.Channel{URL: "http://example.com/"}

	_, err := ProcessChannel(context.Background(), fetcher, store, channel)
	if err == nil {
		t.Fatal("expected InvalidStateError for channel missing selectors")
	}
	if _, ok := err.(*InvalidStateError); !ok {
		t.Errorf("expected *InvalidStateError, got %T", err)
	}
}
