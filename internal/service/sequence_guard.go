package service

import "sync"

// sequenceGuard closes the stale-response race: in-flight requests are not
// cancellable, so each logical read operation stamps its invocation with a
// monotonic number and only the latest one may apply its result.
type sequenceGuard struct {
	mu     sync.Mutex
	issued uint64
}

func (g *sequenceGuard) next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

func (g *sequenceGuard) isLatest(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return seq == g.issued
}
