// Package scheduler implements the two-stage worker-pool pipeline that
// drives one scrape run: a channel worker pool feeds entries into a
// bounded queue consumed by an entry worker pool, both pools draining
// on shutdown sentinels rather than channel-close, so that "every
// worker exits after consuming exactly one shutdown marker" holds
// independent of the other workers' progress (spec §4.8). Grounded on
// webscraper/aioscraper.py's channel_worker/entry_worker and
// test_aioscraper.py's sentinel-exit tests.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/notapresent/glommer/internal/extract"
	"github.com/notapresent/glommer/internal/insertbuffer"
	"github.com/notapresent/glommer/internal/logger"
	"github.com/notapresent/glommer/internal/model"
	"github.com/notapresent/glommer/internal/pipeline"
)

// Config tunes pool sizes and batching. Zero-value fields fall back to
// DefaultConfig()'s values.
type Config struct {
	ChannelPoolSize int           // P_c
	EntryPoolSize   int           // P_e
	InsertBatchSize int           // insert buffer capacity N
	GlobalTimeout   time.Duration // wraps the whole run
}

// DefaultConfig returns the spec's documented tunable defaults.
func DefaultConfig() Config {
	return Config{
		ChannelPoolSize: 2,
		EntryPoolSize:   32,
		InsertBatchSize: 100,
		GlobalTimeout:   5 * time.Minute,
	}
}

// Result summarizes one completed run for the CLI's summary line.
type Result struct {
	ChannelsProcessed int
	EntriesProcessed  int
}

// Run executes one full scrape: it loads enabled channels from store,
// fans them out across a channel worker pool, pipes discovered entries
// through a bounded queue to an entry worker pool, and flushes the
// insert buffer unconditionally on every exit path — success, a
// processing error, or global-timeout cancellation.
func Run(ctx context.Context, store model.ChannelStore, dl pipeline.Fetcher, ee *extract.EntryExtractor, cfg Config) (Result, error) {
	def := DefaultConfig()
	if cfg.ChannelPoolSize == 0 {
		cfg.ChannelPoolSize = def.ChannelPoolSize
	}
	if cfg.EntryPoolSize == 0 {
		cfg.EntryPoolSize = def.EntryPoolSize
	}
	if cfg.InsertBatchSize == 0 {
		cfg.InsertBatchSize = def.InsertBatchSize
	}
	if cfg.GlobalTimeout == 0 {
		cfg.GlobalTimeout = def.GlobalTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.GlobalTimeout)
	defer cancel()

	channels, err := store.EnabledChannels(ctx)
	if err != nil {
		return Result{}, err
	}

	buf := insertbuffer.New(cfg.InsertBatchSize, func(ctx context.Context, batch []*model.Entry) error {
		return store.BulkInsert(ctx, batch)
	})
	// Flush runs on every exit path, per spec §4.5's scoped-acquire
	// discipline: successful completion, a propagated error, or
	// cancellation via the global timeout above.
	defer func() {
		if err := buf.Flush(context.Background()); err != nil {
			logger.Error("insert buffer flush failed", "error", err)
		}
	}()

	deque := newChannelDeque(channels, cfg.ChannelPoolSize)
	entryQueue := make(chan *model.Entry, 2*cfg.EntryPoolSize)

	var channelsProcessed, entriesProcessed int64
	remainingChannelWorkers := int32(cfg.ChannelPoolSize)

	var channelWG sync.WaitGroup
	for i := 0; i < cfg.ChannelPoolSize; i++ {
		channelWG.Add(1)
		go runChannelWorker(ctx, deque, entryQueue, store, dl, &channelsProcessed, &remainingChannelWorkers, cfg.EntryPoolSize, &channelWG)
	}

	var entryWG sync.WaitGroup
	for i := 0; i < cfg.EntryPoolSize; i++ {
		entryWG.Add(1)
		go runEntryWorker(ctx, entryQueue, dl, ee, buf, &entriesProcessed, &entryWG)
	}

	channelWG.Wait()
	entryWG.Wait()

	if err := ctx.Err(); err != nil {
		return Result{
			ChannelsProcessed: int(atomic.LoadInt64(&channelsProcessed)),
			EntriesProcessed:  int(atomic.LoadInt64(&entriesProcessed)),
		}, err
	}

	return Result{
		ChannelsProcessed: int(atomic.LoadInt64(&channelsProcessed)),
		EntriesProcessed:  int(atomic.LoadInt64(&entriesProcessed)),
	}, nil
}

func runChannelWorker(
	ctx context.Context,
	deque *channelDeque,
	entryQueue chan *model.Entry,
	store model.ChannelStore,
	dl pipeline.Fetcher,
	channelsProcessed *int64,
	remaining *int32,
	entryPoolSize int,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			finishChannelWorker(ctx, remaining, entryQueue, entryPoolSize)
			return
		default:
		}

		channel, ok := deque.pop()
		if !ok || channel == nil {
			finishChannelWorker(ctx, remaining, entryQueue, entryPoolSize)
			return
		}

		entries, err := pipeline.ProcessChannel(ctx, dl, store, channel)
		if err != nil {
			logger.Error("channel processing failed", "channel", channel.String(), "error", err)
			continue
		}
		atomic.AddInt64(channelsProcessed, 1)

		for _, e := range entries {
			select {
			case entryQueue <- e:
			case <-ctx.Done():
				finishChannelWorker(ctx, remaining, entryQueue, entryPoolSize)
				return
			}
		}
	}
}

// finishChannelWorker decrements the shared exit counter; the worker
// that observes it reach zero is the last channel worker to finish, and
// it alone injects the entry pool's shutdown sentinels — this is the
// Go translation of spec §4.8's "the last channel worker to observe an
// empty deque pushes exactly P_e entry shutdown sentinels".
func finishChannelWorker(ctx context.Context, remaining *int32, entryQueue chan *model.Entry, entryPoolSize int) {
	if atomic.AddInt32(remaining, -1) != 0 {
		return
	}
	// On a clean drain (no cancellation) each push blocks until the
	// entry workers, still consuming, make room in the queue. Under
	// cancellation the remaining pushes are abandoned rather than risk
	// blocking on workers that have already exited via their own
	// ctx.Done() case.
	for i := 0; i < entryPoolSize; i++ {
		select {
		case entryQueue <- nil:
		case <-ctx.Done():
			return
		}
	}
}

func runEntryWorker(
	ctx context.Context,
	entryQueue chan *model.Entry,
	dl pipeline.Fetcher,
	ee *extract.EntryExtractor,
	buf *insertbuffer.Buffer[*model.Entry],
	entriesProcessed *int64,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case entry := <-entryQueue:
			if entry == nil {
				return
			}
			pipeline.ProcessEntry(ctx, dl, ee, entry)
			if err := buf.Add(ctx, entry); err != nil {
				logger.Error("insert buffer add failed", "entry", entry.String(), "error", err)
				continue
			}
			atomic.AddInt64(entriesProcessed, 1)
		}
	}
}
