// Package store implements model.ChannelStore against gorm.io/gorm with
// the sqlite driver (spec §6's persisted-state layout). Grounded on
// other_examples/.../nickheyer-Crepes internal-scraper-engine.go's
// gorm.DB usage; this was not a teacher dependency but the only gorm
// example in the pack, so it supplies the idiom.
package store

import (
	"time"

	"gorm.io/gorm"
)

// channelRow is the GORM model for the channel table. Field order and
// names mirror spec §6's layout: channel(id, title, url, enabled,
// interval, slug UNIQUE, status, row_selector, url_selector,
// title_selector, extra_selector).
type channelRow struct {
	ID      uint   `gorm:"primaryKey"`
	Title   string `gorm:"size:255"`
	URL     string `gorm:"size:2048;not null"`
	Enabled bool   `gorm:"index;not null"`

	Slug string `gorm:"size:32;uniqueIndex;not null"`

	Interval string `gorm:"size:16;not null"`
	Status   string `gorm:"size:16;not null"`

	RowSelector   string `gorm:"not null"`
	URLSelector   string `gorm:"not null"`
	TitleSelector string `gorm:"not null"`
	ExtraSelector string
}

func (channelRow) TableName() string { return "channel" }

// entryRow is the GORM model for the entry table: entry(id, channel_id,
// added, status, url, title, extra, final_url, items JSON,
// UNIQUE(channel_id, url)).
type entryRow struct {
	ID        uint `gorm:"primaryKey"`
	ChannelID uint `gorm:"not null;uniqueIndex:idx_channel_url"`
	Added     time.Time

	Status string `gorm:"size:16;not null"`

	URL      string `gorm:"size:2048;not null;uniqueIndex:idx_channel_url"`
	Title    string `gorm:"size:500"`
	Extra    string
	FinalURL string `gorm:"size:2048"`

	// Items is the {category: [url, ...]} mapping, persisted as a JSON
	// text blob (spec §6: "items JSON").
	Items string `gorm:"type:text"`
}

func (entryRow) TableName() string { return "entry" }

// Migrate creates or updates the channel/entry tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&channelRow{}, &entryRow{})
}
