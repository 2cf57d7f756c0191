package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/notapresent/glommer/internal/model"
)

// newTestStore opens a private named in-memory database per test. The
// name is unique per test so parallel or sequential runs never see each
// other's rows, and the pool is pinned to a single connection because
// sqlite's shared in-memory mode only persists across connections while
// at least one stays open.
func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		t.Fatalf("DB() error = %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return s
}

func TestGormStore_SaveChannelAssignsSlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ch := &model.Channel{
		Title:         "Test Channel",
		URL:           "http://example.com/",
		Enabled:       true,
		RowSelector:   "//div",
		URLSelector:   "//a/@href",
		TitleSelector: "//span/text()",
	}

	if err := s.SaveChannel(ctx, ch); err != nil {
		t.Fatalf("SaveChannel() error = %v", err)
	}
	if len(ch.Slug) != 32 {
		t.Errorf("Slug = %q, want 32 chars", ch.Slug)
	}
}

func TestGormStore_EnabledChannelsFiltersDisabled(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	enabled := &model.Channel{URL: "http://example.com/a", Enabled: true, RowSelector: "//div", URLSelector: "//a", TitleSelector: "//span"}
	disabled := &model.Channel{URL: "http://example.com/b", Enabled: false, RowSelector: "//div", URLSelector: "//a", TitleSelector: "//span"}

	if err := s.SaveChannel(ctx, enabled); err != nil {
		t.Fatalf("SaveChannel() error = %v", err)
	}
	if err := s.SaveChannel(ctx, disabled); err != nil {
		t.Fatalf("SaveChannel() error = %v", err)
	}

	channels, err := s.EnabledChannels(ctx)
	if err != nil {
		t.Fatalf("EnabledChannels() error = %v", err)
	}
	if len(channels) != 1 || channels[0].URL != enabled.URL {
		t.Errorf("channels = %v", channels)
	}
}

func TestGormStore_BulkInsertAndEntryIDURLs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ch := &model.Channel{URL: "http://example.com/", RowSelector: "//div", URLSelector: "//a", TitleSelector: "//span"}
	if err := s.SaveChannel(ctx, ch); err != nil {
		t.Fatalf("SaveChannel() error = %v", err)
	}

	entries := []*model.Entry{
		{ChannelID: ch.ID, URL: "http://example.com/e1", Title: "E1"},
		{ChannelID: ch.ID, URL: "http://example.com/e2", Title: "E2"},
	}
	if err := s.BulkInsert(ctx, entries); err != nil {
		t.Fatalf("BulkInsert() error = %v", err)
	}

	rows, err := s.EntryIDURLs(ctx, ch)
	if err != nil {
		t.Fatalf("EntryIDURLs() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestGormStore_DeleteEntriesScopedToChannel(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ch1 := &model.Channel{URL: "http://example.com/c1", RowSelector: "//div", URLSelector: "//a", TitleSelector: "//span"}
	ch2 := &model.Channel{URL: "http://example.com/c2", RowSelector: "//div", URLSelector: "//a", TitleSelector: "//span"}
	if err := s.SaveChannel(ctx, ch1); err != nil {
		t.Fatalf("SaveChannel() error = %v", err)
	}
	if err := s.SaveChannel(ctx, ch2); err != nil {
		t.Fatalf("SaveChannel() error = %v", err)
	}

	if err := s.BulkInsert(ctx, []*model.Entry{
		{ChannelID: ch1.ID, URL: "http://example.com/e1"},
		{ChannelID: ch2.ID, URL: "http://example.com/e1"},
	}); err != nil {
		t.Fatalf("BulkInsert() error = %v", err)
	}

	rows, err := s.EntryIDURLs(ctx, ch1)
	if err != nil {
		t.Fatalf("EntryIDURLs() error = %v", err)
	}
	var ids []uint
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	if err := s.DeleteEntries(ctx, ch1, ids); err != nil {
		t.Fatalf("DeleteEntries() error = %v", err)
	}

	ch1Rows, err := s.EntryIDURLs(ctx, ch1)
	if err != nil {
		t.Fatalf("EntryIDURLs() error = %v", err)
	}
	if len(ch1Rows) != 0 {
		t.Errorf("expected ch1 entries deleted, got %v", ch1Rows)
	}

	ch2Rows, err := s.EntryIDURLs(ctx, ch2)
	if err != nil {
		t.Fatalf("EntryIDURLs() error = %v", err)
	}
	if len(ch2Rows) != 1 {
		t.Errorf("expected ch2 entry untouched, got %v", ch2Rows)
	}
}
