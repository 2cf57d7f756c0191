package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/notapresent/glommer/internal/model"
)

// GormStore implements model.ChannelStore against a gorm.DB.
type GormStore struct {
	db *gorm.DB
}

// Open opens (and migrates) a sqlite-backed store at dsn, e.g.
// "glommer.db" or "file::memory:?cache=shared" for tests.
func Open(dsn string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// New wraps an already-open, already-migrated *gorm.DB.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) EnabledChannels(ctx context.Context) ([]*model.Channel, error) {
	var rows []*channelRow
	if err := s.db.WithContext(ctx).Where("enabled = ?", true).Find(&rows).Error; err != nil {
		return nil, err
	}
	channels := make([]*model.Channel, len(rows))
	for i, r := range rows {
		channels[i] = toChannelModel(r)
	}
	return channels, nil
}

func (s *GormStore) EntryIDURLs(ctx context.Context, channel *model.Channel) ([]model.EntryIDURL, error) {
	var rows []entryRow
	err := s.db.WithContext(ctx).
		Model(&entryRow{}).
		Select("id", "url").
		Where("channel_id = ?", channel.ID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]model.EntryIDURL, len(rows))
	for i, r := range rows {
		out[i] = model.EntryIDURL{ID: r.ID, URL: r.URL}
	}
	return out, nil
}

func (s *GormStore) DeleteEntries(ctx context.Context, channel *model.Channel, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("channel_id = ? AND id IN ?", channel.ID, ids).
		Delete(&entryRow{}).Error
}

func (s *GormStore) BulkInsert(ctx context.Context, entries []*model.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]*entryRow, len(entries))
	for i, e := range entries {
		rows[i] = fromEntryModel(e)
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func (s *GormStore) SaveChannel(ctx context.Context, channel *model.Channel) error {
	if channel.Slug == "" {
		channel.Slug = NewSlug()
	}
	row := fromChannelModel(channel)
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	channel.ID = row.ID
	return nil
}

// NewSlug generates the 32-character random, globally-unique channel
// identifier spec §3 describes, assigned once at creation and never
// changed afterward.
func NewSlug() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
