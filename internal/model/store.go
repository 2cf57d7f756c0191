package model

import "context"

// ChannelStore is the persistence contract the core pipeline consumes.
// Its implementation (migrations, ORM, query plans) is an external
// collaborator — the pipeline only ever talks to this interface.
type ChannelStore interface {
	// EnabledChannels returns every channel with Enabled == true.
	EnabledChannels(ctx context.Context) ([]*Channel, error)

	// EntryIDURLs returns the {id, url} projection of every entry
	// currently stored for the given channel.
	EntryIDURLs(ctx context.Context, channel *Channel) ([]EntryIDURL, error)

	// DeleteEntries removes the entries with the given ids, scoped to
	// channel (defense in depth against cross-channel id collisions).
	DeleteEntries(ctx context.Context, channel *Channel, ids []uint) error

	// BulkInsert persists a batch of new entries in one call.
	BulkInsert(ctx context.Context, entries []*Entry) error

	// SaveChannel persists a channel's mutable fields (status, in
	// practice — everything else is admin-managed and read-only here).
	SaveChannel(ctx context.Context, channel *Channel) error
}
