package model

import "time"

// Category names an item bucket on an entry. Order matters: it is the
// fixed iteration order used for cross-category deduplication (spec
// §4.3) and for resolution-collapse (streaming only).
type Category string

const (
	CategoryImages    Category = "images"
	CategoryVideos    Category = "videos"
	CategoryStreaming Category = "streaming"
)

// CategoryOrder is the fixed processing order: images, then videos, then
// streaming. Iterating in this order is load-bearing for "first-seen
// category wins" deduplication.
var CategoryOrder = []Category{CategoryImages, CategoryVideos, CategoryStreaming}

// ItemSet maps a category to its (deduplicated, ordered) URL sequence.
// Categories with no URLs are omitted entirely, never present with an
// empty slice.
type ItemSet map[Category][]string

// Entry is one discovered link off a channel's index page.
type Entry struct {
	ID        uint
	ChannelID uint
	Added     time.Time

	URL      string `validate:"required,url"` // as seen on the channel page, already absolute
	Title    string
	Extra    string
	FinalURL string // blank if the fetch did not redirect

	Items  ItemSet
	Status Status
}

// RealURL is FinalURL if set, else URL. Every item URL is resolved
// against this as the base.
func (e *Entry) RealURL() string {
	if e.FinalURL != "" {
		return e.FinalURL
	}
	return e.URL
}

func (e *Entry) String() string {
	return e.Title
}

// EntryIDURL is the minimal projection the URL tracker needs from
// storage: an entry's id and the URL it was discovered at.
type EntryIDURL struct {
	ID  uint
	URL string
}
