package scheduler

import (
	"sync"

	"github.com/notapresent/glommer/internal/model"
)

// channelDeque is a FIFO queue of channels with trailing nil shutdown
// sentinels, popped from the head by every channel worker. A plain
// mutex-guarded slice stands in for the source's asyncio deque; the
// critical section here never performs I/O or suspends, matching
// spec §5's single-mutex requirement.
type channelDeque struct {
	mu    sync.Mutex
	items []*model.Channel
}

func newChannelDeque(channels []*model.Channel, sentinels int) *channelDeque {
	items := make([]*model.Channel, 0, len(channels)+sentinels)
	items = append(items, channels...)
	for i := 0; i < sentinels; i++ {
		items = append(items, nil)
	}
	return &channelDeque{items: items}
}

// pop removes and returns the head item. ok is false only once the
// deque is fully drained (which should never happen before a sentinel
// is seen, since sentinels always trail the real channels).
func (d *channelDeque) pop() (channel *model.Channel, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return nil, false
	}
	channel = d.items[0]
	d.items = d.items[1:]
	return channel, true
}
