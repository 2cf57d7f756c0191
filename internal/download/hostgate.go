package download

import (
	"context"
	"sync"
)

// hostGate caps the number of concurrent in-flight requests per host.
// colly's own per-domain LimitRule only coordinates callers sharing one
// Collector instance; since Get builds a fresh Collector per request
// (to keep per-request callback state goroutine-safe), the cap is
// enforced here instead, per spec §9: "implementations that lack native
// per-host limits must add a per-host gate."
type hostGate struct {
	limit int

	mu   sync.Mutex
	sems map[string]chan struct{}
}

func newHostGate(limit int) *hostGate {
	return &hostGate{limit: limit, sems: make(map[string]chan struct{})}
}

func (g *hostGate) semFor(host string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()

	sem, ok := g.sems[host]
	if !ok {
		sem = make(chan struct{}, g.limit)
		g.sems[host] = sem
	}
	return sem
}

// acquire blocks until a slot for host is free or ctx is done. The
// returned release func must be called exactly once.
func (g *hostGate) acquire(ctx context.Context, host string) (release func(), err error) {
	sem := g.semFor(host)

	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
